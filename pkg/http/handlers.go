package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/common"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
	"github.com/SmdhMdep/iot-status-api/pkg/repo"
)

func (rs *RestfulServer) ListDevices(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}
	organization, err := rs.requestOrganization(c)
	if err != nil {
		respondError(c, err)
		return
	}

	var label *models.DeviceLabel
	if raw := c.Query("label"); raw != "" {
		if label = models.DeviceLabelFromValue(raw); label == nil {
			respondError(c, apperrors.InvalidArgument("unknown label: "+raw))
			return
		}
	}

	page, err := rs.Repo.ListDevices(c.Request.Context(), repo.ListDevicesInput{
		Provider:     provider,
		Organization: organization,
		NameLike:     optional(c.Query("query")),
		Label:        label,
		Page:         optional(c.Query("page")),
		PageSize:     intQuery(c, "page_size"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

func (rs *RestfulServer) ExportDevices(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}
	organization, err := rs.requestOrganization(c)
	if err != nil {
		respondError(c, err)
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "json" {
		respondError(c, apperrors.InvalidArgument(
			"expected format to be 'csv' or 'json' got '"+format+"'"))
		return
	}

	devices, err := rs.Repo.ExportDevices(c.Request.Context(), provider, organization)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment;filename=devices_export."+format)
	if format == "json" {
		c.JSON(http.StatusOK, devices)
		return
	}

	body, err := serializeDevicesCSV(devices)
	if err != nil {
		respondError(c, apperrors.Internal("failed to serialize devices", err))
		return
	}
	c.Data(http.StatusOK, "text/csv", body)
}

func (rs *RestfulServer) GetDevice(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}
	organization, err := rs.requestOrganization(c)
	if err != nil {
		respondError(c, err)
		return
	}

	device, err := rs.Repo.GetDevice(c.Request.Context(), repo.GetDeviceInput{
		Provider:     provider,
		Organization: organization,
		Name:         c.Param("device_name"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, device)
}

type LabelRequest struct {
	Label string `json:"label"`
}

var labelRequestSchema = z.Struct(z.Shape{
	"Label": z.String(),
})

func (rs *RestfulServer) UpdateDeviceLabel(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}
	organization, err := rs.requestOrganization(c)
	if err != nil {
		respondError(c, err)
		return
	}

	name := c.Param("device_name")

	// scope check: the caller must be able to see the device at all
	// before touching its label
	if _, err := rs.Repo.GetDevice(c.Request.Context(), repo.GetDeviceInput{
		Provider:     provider,
		Organization: organization,
		Name:         name,
		Brief:        true,
	}); err != nil {
		respondError(c, err)
		return
	}

	var req LabelRequest
	if err := labelRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	var label *models.DeviceLabel
	if req.Label != "" {
		if label = models.DeviceLabelFromValue(req.Label); label == nil {
			respondError(c, apperrors.InvalidArgument("unknown label: "+req.Label))
			return
		}
	}

	if err := rs.Repo.UpdateDeviceLabel(c.Request.Context(), name, label); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (rs *RestfulServer) ListProviders(c *gin.Context) {
	all := rs.Offline
	var memberships []string
	if caller := currentAuth(c); caller != nil {
		all = caller.IsAdmin()
		memberships = caller.GroupMemberships
	}

	page, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	providers, err := rs.Repo.ListProviders(c.Request.Context(), repo.ListProvidersInput{
		NameLike:    optional(c.Query("query")),
		Page:        page,
		PageSize:    intQuery(c, "page_size"),
		All:         all,
		Memberships: memberships,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, providers)
}

func (rs *RestfulServer) ListOrganizations(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}
	organization, err := rs.requestOrganization(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	admin := rs.Offline
	if caller := currentAuth(c); caller != nil {
		admin = caller.IsAdmin()
	}
	all := c.DefaultQuery("all", "1") == "1" || admin

	organizations, err := rs.Repo.ListOrganizations(c.Request.Context(), repo.ListOrganizationsInput{
		Provider:     provider,
		NameLike:     optional(c.Query("query")),
		Page:         page,
		PageSize:     intQuery(c, "page_size"),
		All:          all,
		Organization: organization,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, organizations)
}

func (rs *RestfulServer) ListProjects(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}
	organization, err := rs.requestOrganization(c)
	if err != nil {
		respondError(c, err)
		return
	}
	page, err := pageQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	projects, err := rs.Repo.ListProjects(c.Request.Context(), repo.ListProjectsInput{
		Provider:     provider,
		Organization: organization,
		NameLike:     optional(c.Query("query")),
		Page:         page,
		PageSize:     intQuery(c, "page_size"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

func (rs *RestfulServer) ListSchemas(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}

	schemas, err := rs.Repo.ListSchemas(c.Request.Context(), repo.ListSchemasInput{
		Provider: provider,
		Page:     optional(c.Query("page")),
		PageSize: intQuery(c, "page_size"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schemas)
}

func (rs *RestfulServer) GetSchema(c *gin.Context) {
	provider, err := rs.requestProvider(c)
	if err != nil {
		respondError(c, err)
		return
	}

	schema, err := rs.Repo.GetSchema(c.Request.Context(), provider, c.Param("schema_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, schema)
}

func (rs *RestfulServer) Me(c *gin.Context) {
	caller := currentAuth(c)
	if caller == nil {
		if rs.Offline {
			c.JSON(http.StatusOK, gin.H{"name": "offline-user", "admin": true})
			return
		}
		respondError(c, apperrors.Unauthorized("missing bearer token"))
		return
	}

	groups := common.Mapper(caller.GroupMemberships, repo.CanonicalGroupName)

	c.JSON(http.StatusOK, gin.H{
		"email":       caller.Email,
		"name":        caller.Name,
		"groups":      groups,
		"permissions": caller.Permissions,
		"admin":       caller.IsAdmin(),
	})
}

func pageQuery(c *gin.Context) (*int, error) {
	value := c.Query("page")
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed < 0 {
		return nil, apperrors.InvalidArgument("invalid page key")
	}
	return &parsed, nil
}

func intQuery(c *gin.Context, key string) int {
	value, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return value
}
