package http

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/SmdhMdep/iot-status-api/pkg/models"
)

// deviceCSVColumns is the flattened column set of the export, dotted keys
// mirroring the JSON field paths.
var deviceCSVColumns = []string{
	"name",
	"connectivity.connected",
	"connectivity.timestamp",
	"connectivity.disconnectReason",
	"connectivity.disconnectReasonDescription",
	"provider",
	"deviceInfo.organization",
	"deviceInfo.project",
	"deviceInfo.provisioningStatus",
	"deviceInfo.provisioningTimestamp",
	"deviceInfo.registrationStatus",
	"deviceInfo.registrationTimestamp",
	"label",
}

func serializeDevicesCSV(devices []models.Device) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(deviceCSVColumns); err != nil {
		return nil, err
	}
	for i := range devices {
		if err := writer.Write(deviceCSVRow(&devices[i])); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func deviceCSVRow(device *models.Device) []string {
	row := make([]string, 0, len(deviceCSVColumns))
	row = append(row, device.Name)

	if connectivity := device.Connectivity; connectivity != nil {
		row = append(row,
			strconv.FormatBool(connectivity.Connected),
			csvTimestamp(connectivity.Timestamp),
			csvString(connectivity.DisconnectReason),
			csvString(connectivity.DisconnectReasonDescription),
		)
	} else {
		row = append(row, "", "", "", "")
	}

	row = append(row, csvString(device.Provider))

	if info := device.DeviceInfo; info != nil {
		row = append(row,
			info.Organization,
			info.Project,
			csvString(info.ProvisioningStatus),
			csvTimestamp(info.ProvisioningTimestamp),
			csvString(info.RegistrationStatus),
			csvTimestamp(info.RegistrationTimestamp),
		)
	} else {
		row = append(row, "", "", "", "", "", "")
	}

	if device.Label != nil {
		row = append(row, string(*device.Label))
	} else {
		row = append(row, "")
	}
	return row
}

func csvString(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

func csvTimestamp(value *models.Timestamp) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}
