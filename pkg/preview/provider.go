// Package preview extracts a short preview of the data a device has been
// streaming. The device's publish topic is resolved to a package in the data
// catalog, and the first few lines of the package's stored resource are read
// from the stream data bucket.
package preview

//go:generate mockgen -source=provider.go -destination=mocks/mock_provider.go -package=mocks

import (
	"bufio"
	"context"
	"io"
	"strings"
	"time"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/models"
)

const previewMaxLines = 5

// Resource is one stored file of a catalog package.
type Resource struct {
	Name            string  `json:"name"`
	CloudStorageKey *string `json:"cloud_storage_key"`
	LastModified    string  `json:"last_modified"`
}

// Package is a data catalog package and its resources.
type Package struct {
	Resources []Resource `json:"resources"`
}

// PackageAPI looks up catalog packages. A nil package means the package does
// not exist or is not accessible.
type PackageAPI interface {
	FindPackage(ctx context.Context, organization, project string) (*Package, error)
}

// ObjectStore reads stored stream data objects.
type ObjectStore interface {
	Download(ctx context.Context, key string) (io.ReadCloser, error)
}

type Provider struct {
	packages PackageAPI
	objects  ObjectStore
}

func NewProvider(packages PackageAPI, objects ObjectStore) *Provider {
	return &Provider{packages: packages, objects: objects}
}

// GetStreamPreview reads the first lines of the stream data a device
// publishes to topic. It returns nil when no preview exists yet.
//
// Topic format: ($aws/)rules/<rule_name>/<version>/<org>/<project>/<resource>
func (p *Provider) GetStreamPreview(ctx context.Context, topic string) (*models.StreamPreview, error) {
	organization, project, resourceName, err := parseTopic(topic)
	if err != nil {
		return nil, err
	}

	pkg, err := p.packages.FindPackage(ctx, organization, project)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, nil
	}

	resource := findResource(pkg, resourceName)
	if resource == nil || resource.CloudStorageKey == nil {
		return nil, nil
	}

	body, err := p.objects.Download(ctx, *resource.CloudStorageKey)
	if err != nil {
		return nil, apperrors.Internal("unable to read stream data for key "+*resource.CloudStorageKey, err)
	}
	defer body.Close()

	text, err := readPreviewLines(body)
	if err != nil {
		return nil, apperrors.Internal("unable to read stream data for key "+*resource.CloudStorageKey, err)
	}

	return &models.StreamPreview{
		Text:               text,
		LastBatchTimestamp: lastModifiedTimestamp(resource.LastModified),
	}, nil
}

func parseTopic(topic string) (organization, project, resource string, err error) {
	trimmed := strings.TrimPrefix(topic, "$aws/")
	trimmed = strings.TrimPrefix(trimmed, "rules/")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 5 {
		return "", "", "", apperrors.Internal("unrecognized streaming topic format: "+topic, nil)
	}
	return parts[2], parts[3], parts[4], nil
}

func findResource(pkg *Package, name string) *Resource {
	for i := range pkg.Resources {
		if pkg.Resources[i].Name == name {
			return &pkg.Resources[i]
		}
	}
	return nil
}

func readPreviewLines(body io.Reader) (string, error) {
	scanner := bufio.NewScanner(body)
	var lines []string
	for len(lines) < previewMaxLines && scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return strings.Join(lines, "\n"), nil
}

func lastModifiedTimestamp(value string) *models.Timestamp {
	if value == "" {
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05", value)
		if err != nil {
			return nil
		}
		parsed = parsed.UTC()
	}
	ts := models.Timestamp(parsed.Unix()) + models.Timestamp(parsed.Nanosecond())/1e9
	return &ts
}
