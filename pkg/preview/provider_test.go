package preview_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/SmdhMdep/iot-status-api/pkg/apperrors"
	"github.com/SmdhMdep/iot-status-api/pkg/preview"
	"github.com/SmdhMdep/iot-status-api/pkg/preview/mocks"
	_ "github.com/SmdhMdep/iot-status-api/pkg/testing"
)

func newTestProvider(t *testing.T) (*gomock.Controller, *preview.Provider, *mocks.MockPackageAPI, *mocks.MockObjectStore) {
	ctrl := gomock.NewController(t)
	packages := mocks.NewMockPackageAPI(ctrl)
	objects := mocks.NewMockObjectStore(ctrl)
	return ctrl, preview.NewProvider(packages, objects), packages, objects
}

func strPtr(s string) *string { return &s }

func TestGetStreamPreview(t *testing.T) {
	ctrl, p, packages, objects := newTestProvider(t)
	defer ctrl.Finish()

	packages.EXPECT().
		FindPackage(gomock.Any(), "acme", "soil").
		Return(&preview.Package{Resources: []preview.Resource{
			{Name: "other", CloudStorageKey: strPtr("acme/other.jsonl")},
			{Name: "stream", CloudStorageKey: strPtr("acme/stream.jsonl"), LastModified: "2024-05-01T10:30:00"},
		}}, nil)
	objects.EXPECT().
		Download(gomock.Any(), "acme/stream.jsonl").
		Return(io.NopCloser(strings.NewReader("l1\nl2\nl3\nl4\nl5\nl6\nl7\n")), nil)

	result, err := p.GetStreamPreview(context.Background(), "$aws/rules/ingest/v1/acme/soil/stream")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "l1\nl2\nl3\nl4\nl5", result.Text)
	require.NotNil(t, result.LastBatchTimestamp)
	// 2024-05-01T10:30:00 UTC
	assert.Equal(t, float64(1714559400), *result.LastBatchTimestamp)
}

func TestGetStreamPreview_TopicWithoutPrefixes(t *testing.T) {
	ctrl, p, packages, objects := newTestProvider(t)
	defer ctrl.Finish()

	packages.EXPECT().
		FindPackage(gomock.Any(), "acme", "soil").
		Return(&preview.Package{Resources: []preview.Resource{
			{Name: "stream", CloudStorageKey: strPtr("acme/stream.jsonl"), LastModified: "2024-05-01T10:30:00Z"},
		}}, nil)
	objects.EXPECT().
		Download(gomock.Any(), "acme/stream.jsonl").
		Return(io.NopCloser(strings.NewReader("l1\n")), nil)

	result, err := p.GetStreamPreview(context.Background(), "rules/ingest/v1/acme/soil/stream")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "l1", result.Text)
}

func TestGetStreamPreview_UnrecognizedTopic(t *testing.T) {
	ctrl, p, _, _ := newTestProvider(t)
	defer ctrl.Finish()

	_, err := p.GetStreamPreview(context.Background(), "rules/ingest/acme/stream")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	assert.Contains(t, err.Error(), "unrecognized streaming topic format")
}

func TestGetStreamPreview_NoPackage(t *testing.T) {
	ctrl, p, packages, _ := newTestProvider(t)
	defer ctrl.Finish()

	packages.EXPECT().FindPackage(gomock.Any(), "acme", "soil").Return(nil, nil)

	result, err := p.GetStreamPreview(context.Background(), "rules/ingest/v1/acme/soil/stream")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGetStreamPreview_NoMatchingResource(t *testing.T) {
	ctrl, p, packages, _ := newTestProvider(t)
	defer ctrl.Finish()

	packages.EXPECT().
		FindPackage(gomock.Any(), "acme", "soil").
		Return(&preview.Package{Resources: []preview.Resource{
			{Name: "other", CloudStorageKey: strPtr("acme/other.jsonl")},
			// a resource without stored data yet
			{Name: "stream"},
		}}, nil)

	result, err := p.GetStreamPreview(context.Background(), "rules/ingest/v1/acme/soil/stream")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestGetStreamPreview_DownloadError(t *testing.T) {
	ctrl, p, packages, objects := newTestProvider(t)
	defer ctrl.Finish()

	packages.EXPECT().
		FindPackage(gomock.Any(), "acme", "soil").
		Return(&preview.Package{Resources: []preview.Resource{
			{Name: "stream", CloudStorageKey: strPtr("acme/stream.jsonl")},
		}}, nil)
	objects.EXPECT().
		Download(gomock.Any(), "acme/stream.jsonl").
		Return(nil, errors.New("bucket unreachable"))

	_, err := p.GetStreamPreview(context.Background(), "rules/ingest/v1/acme/soil/stream")
	require.Error(t, err)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
}

func TestGetStreamPreview_UnparsableLastModified(t *testing.T) {
	ctrl, p, packages, objects := newTestProvider(t)
	defer ctrl.Finish()

	packages.EXPECT().
		FindPackage(gomock.Any(), "acme", "soil").
		Return(&preview.Package{Resources: []preview.Resource{
			{Name: "stream", CloudStorageKey: strPtr("acme/stream.jsonl"), LastModified: "yesterday"},
		}}, nil)
	objects.EXPECT().
		Download(gomock.Any(), "acme/stream.jsonl").
		Return(io.NopCloser(strings.NewReader("l1\n")), nil)

	result, err := p.GetStreamPreview(context.Background(), "rules/ingest/v1/acme/soil/stream")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Nil(t, result.LastBatchTimestamp)
}
