package face

import (
	"errors"
	"image"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rupamthxt/faceembed/internal/metrics"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockDetector struct {
	mock.Mock
}

func (m *mockDetector) Detect(img []byte) ([]Face, error) {
	args := m.Called(img)
	faces, _ := args.Get(0).([]Face)
	return faces, args.Error(1)
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func writeImage(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestExtract_EmptyPaths(t *testing.T) {
	detector := new(mockDetector)
	ex := NewExtractor(detector, quietLogger())

	_, err := ex.Extract(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	assert.Equal(t, MsgNoImagePaths, err.Error())

	_, err = ex.Extract([]string{})
	assert.True(t, errors.Is(err, ErrInvalidRequest))
	detector.AssertNotCalled(t, "Detect", mock.Anything)
}

func TestExtract_AllMissing(t *testing.T) {
	detector := new(mockDetector)
	ex := NewExtractor(detector, quietLogger())
	dir := t.TempDir()

	_, err := ex.Extract([]string{filepath.Join(dir, "a.jpg"), filepath.Join(dir, "b.jpg")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoFacesDetected))
	assert.Equal(t, MsgNoFacesDetected, err.Error())
	detector.AssertNotCalled(t, "Detect", mock.Anything)
}

func TestExtract_SingleFace(t *testing.T) {
	dir := t.TempDir()
	p := writeImage(t, dir, "one.jpg", "one")
	emb := vector(Dimension, 0.01)

	detector := new(mockDetector)
	detector.On("Detect", []byte("one")).Return([]Face{{Embedding: emb}}, nil).Once()

	got, err := NewExtractor(detector, quietLogger()).Extract([]string{p})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0], Dimension)
	assert.Equal(t, emb, got[0])
	detector.AssertExpectations(t)
}

func TestExtract_SkipsMissingAndFacelessKeepingOrder(t *testing.T) {
	dir := t.TempDir()
	first := writeImage(t, dir, "first.jpg", "first")
	empty := writeImage(t, dir, "empty.jpg", "empty")
	last := writeImage(t, dir, "last.jpg", "last")

	detector := new(mockDetector)
	detector.On("Detect", []byte("first")).Return([]Face{{Embedding: Embedding{1}}}, nil)
	detector.On("Detect", []byte("empty")).Return([]Face{}, nil)
	detector.On("Detect", []byte("last")).Return([]Face{{Embedding: Embedding{3}}}, nil)

	got, err := NewExtractor(detector, quietLogger()).Extract([]string{
		first,
		filepath.Join(dir, "missing.jpg"),
		empty,
		last,
	})
	require.NoError(t, err)
	assert.Equal(t, []Embedding{{1}, {3}}, got)
}

func TestExtract_UsesFirstDetectedFace(t *testing.T) {
	dir := t.TempDir()
	p := writeImage(t, dir, "group.jpg", "group")

	detector := new(mockDetector)
	detector.On("Detect", []byte("group")).Return([]Face{
		{Box: image.Rect(0, 0, 10, 10), Embedding: Embedding{1}},
		{Box: image.Rect(0, 0, 500, 500), Embedding: Embedding{2}},
	}, nil)

	got, err := NewExtractor(detector, quietLogger()).Extract([]string{p})
	require.NoError(t, err)
	assert.Equal(t, []Embedding{{1}}, got)
}

func TestExtract_AllFaceless(t *testing.T) {
	dir := t.TempDir()
	p := writeImage(t, dir, "wall.jpg", "wall")

	detector := new(mockDetector)
	detector.On("Detect", []byte("wall")).Return([]Face(nil), nil)

	_, err := NewExtractor(detector, quietLogger()).Extract([]string{p})
	assert.True(t, errors.Is(err, ErrNoFacesDetected))
}

func TestExtract_DetectorErrorAbortsBatch(t *testing.T) {
	dir := t.TempDir()
	good := writeImage(t, dir, "good.jpg", "good")
	bad := writeImage(t, dir, "bad.jpg", "bad")
	after := writeImage(t, dir, "after.jpg", "after")
	cause := errors.New("image decode failed")

	detector := new(mockDetector)
	detector.On("Detect", []byte("good")).Return([]Face{{Embedding: Embedding{1}}}, nil)
	detector.On("Detect", []byte("bad")).Return(nil, cause)

	got, err := NewExtractor(detector, quietLogger()).Extract([]string{good, bad, after})
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, ErrExtractionFailure))
	assert.True(t, errors.Is(err, cause))
	assert.Equal(t, "image decode failed", err.Error())
	detector.AssertNotCalled(t, "Detect", []byte("after"))
}

func TestExtract_DirectoryIsExtractionFailure(t *testing.T) {
	dir := t.TempDir()

	detector := new(mockDetector)
	_, err := NewExtractor(detector, quietLogger()).Extract([]string{dir})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrExtractionFailure))
}

func TestExtract_MapsPathBeforeExistenceCheck(t *testing.T) {
	name := uuid.NewString() + ".jpg"
	logger, hook := test.NewNullLogger()
	missingBefore := testutil.ToFloat64(metrics.ImagesSkipped.WithLabelValues(metrics.SkipMissing))

	_, err := NewExtractor(new(mockDetector), logger).Extract([]string{
		"/uploads/faces/" + name,
		"uploads/" + name,
	})
	assert.True(t, errors.Is(err, ErrNoFacesDetected))

	var skipped []string
	for _, entry := range hook.AllEntries() {
		if entry.Level == logrus.WarnLevel {
			skipped = append(skipped, entry.Data["path"].(string))
		}
	}
	assert.Equal(t, []string{"/app/uploads/faces/" + name, "/app/uploads/" + name}, skipped)
	assert.Equal(t, missingBefore+2, testutil.ToFloat64(metrics.ImagesSkipped.WithLabelValues(metrics.SkipMissing)))
}
