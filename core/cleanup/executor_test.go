package cleanup_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"content-sweeper/core/cleanup"
	"content-sweeper/core/manifest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDeleter is a strict mock: any key not set up with On fails the test.
type MockDeleter struct {
	mock.Mock
}

func (m *MockDeleter) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func buildManifest(keys ...string) *manifest.Manifest {
	m := &manifest.Manifest{
		Metadata: manifest.Metadata{
			Generated: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
			Bucket:    "bkt",
		},
		OrphanedFiles: []manifest.Entry{},
	}
	for i, key := range keys {
		m.OrphanedFiles = append(m.OrphanedFiles, manifest.Entry{
			ID:       i + 1,
			Filename: key[strings.LastIndex(key, "/")+1:],
			S3Key:    key,
			Status:   manifest.StatusOrphaned,
		})
	}
	m.Metadata.Summary.OrphanedFiles = len(keys)
	return m
}

func TestExecutor_EmptyManifestNeverPrompts(t *testing.T) {
	deleter := new(MockDeleter)
	out := new(bytes.Buffer)
	confirmer := &cleanup.PromptConfirmer{In: strings.NewReader(""), Out: out}

	report, err := cleanup.NewExecutor(deleter, 1, nil).Run(context.Background(), buildManifest(), confirmer)

	require.NoError(t, err)
	assert.Equal(t, cleanup.StateCompleted, report.State)
	assert.Zero(t, report.DeletedCount)
	assert.Empty(t, out.String())
	deleter.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestExecutor_DeclinedConfirmation(t *testing.T) {
	answers := []string{"delete\n", "DELETE \n", " DELETE\n", "yes\n", "\n", "", "DEL"}

	for _, answer := range answers {
		t.Run(fmt.Sprintf("%q", answer), func(t *testing.T) {
			deleter := new(MockDeleter)
			confirmer := &cleanup.PromptConfirmer{In: strings.NewReader(answer), Out: new(bytes.Buffer)}

			m := buildManifest("attachments/a.png", "attachments/b.png")
			report, err := cleanup.NewExecutor(deleter, 1, nil).Run(context.Background(), m, confirmer)

			assert.ErrorIs(t, err, cleanup.ErrConfirmationDeclined)
			assert.Equal(t, cleanup.StateAborted, report.State)
			assert.Zero(t, report.DeletedCount)
			deleter.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		})
	}
}

func TestExecutor_ConfirmedTokenVariants(t *testing.T) {
	for _, answer := range []string{"DELETE\n", "DELETE\r\n", "DELETE"} {
		t.Run(fmt.Sprintf("%q", answer), func(t *testing.T) {
			deleter := new(MockDeleter)
			deleter.On("Delete", mock.Anything, "attachments/a.png").Return(nil).Once()

			confirmer := &cleanup.PromptConfirmer{In: strings.NewReader(answer), Out: new(bytes.Buffer)}
			report, err := cleanup.NewExecutor(deleter, 1, nil).Run(context.Background(), buildManifest("attachments/a.png"), confirmer)

			require.NoError(t, err)
			assert.Equal(t, 1, report.DeletedCount)
			deleter.AssertExpectations(t)
		})
	}
}

func TestExecutor_PartialFailure(t *testing.T) {
	deleter := new(MockDeleter)
	deleter.On("Delete", mock.Anything, "attachments/a.png").Return(nil).Once()
	deleter.On("Delete", mock.Anything, "attachments/b.png").Return(errors.New("connection reset")).Once()

	m := buildManifest("attachments/a.png", "attachments/b.png")
	report, err := cleanup.NewExecutor(deleter, 1, nil).Run(context.Background(), m, cleanup.TokenConfirmer(cleanup.Token))

	assert.ErrorIs(t, err, cleanup.ErrPartialDeletion)
	assert.Equal(t, cleanup.StateCompleted, report.State)
	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.DeletedCount)
	assert.Equal(t, 1, report.FailedCount)
	assert.True(t, report.Outcomes[0].Deleted())
	assert.False(t, report.Outcomes[1].Deleted())
	deleter.AssertExpectations(t)
}

func TestExecutor_FailureDoesNotStopLaterEntries(t *testing.T) {
	deleter := new(MockDeleter)
	deleter.On("Delete", mock.Anything, "k/1").Return(errors.New("boom")).Once()
	deleter.On("Delete", mock.Anything, "k/2").Return(nil).Once()
	deleter.On("Delete", mock.Anything, "k/3").Return(errors.New("boom")).Once()
	deleter.On("Delete", mock.Anything, "k/4").Return(nil).Once()

	report, err := cleanup.NewExecutor(deleter, 1, nil).
		Run(context.Background(), buildManifest("k/1", "k/2", "k/3", "k/4"), cleanup.TokenConfirmer(cleanup.Token))

	assert.ErrorIs(t, err, cleanup.ErrPartialDeletion)
	assert.Equal(t, 2, report.DeletedCount)
	assert.Equal(t, 2, report.FailedCount)
	deleter.AssertNumberOfCalls(t, "Delete", 4)
}

func TestExecutor_DeletesExactlyManifestKeys(t *testing.T) {
	keys := make([]string, 0, 20)
	deleter := new(MockDeleter)
	for i := 0; i < 20; i++ {
		key := fmt.Sprintf("attachments/%02d.png", i)
		keys = append(keys, key)
		deleter.On("Delete", mock.Anything, key).Return(nil).Once()
	}

	report, err := cleanup.NewExecutor(deleter, 4, nil).
		Run(context.Background(), buildManifest(keys...), cleanup.TokenConfirmer(cleanup.Token))

	require.NoError(t, err)
	assert.Equal(t, 20, report.DeletedCount)
	deleter.AssertExpectations(t)

	// Outcomes keep manifest order even with concurrent deletes
	for i, o := range report.Outcomes {
		assert.Equal(t, keys[i], o.Entry.S3Key)
	}
}

func TestExecutor_NilManifest(t *testing.T) {
	report, err := cleanup.NewExecutor(new(MockDeleter), 1, nil).Run(context.Background(), nil, cleanup.TokenConfirmer(cleanup.Token))

	assert.ErrorIs(t, err, manifest.ErrManifestMissing)
	assert.Equal(t, cleanup.StateAborted, report.State)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("tty closed")
}

func TestExecutor_ConfirmationReadError(t *testing.T) {
	deleter := new(MockDeleter)
	confirmer := &cleanup.PromptConfirmer{In: failingReader{}, Out: new(bytes.Buffer)}

	report, err := cleanup.NewExecutor(deleter, 1, nil).Run(context.Background(), buildManifest("a/b.png"), confirmer)

	assert.Error(t, err)
	assert.NotErrorIs(t, err, cleanup.ErrConfirmationDeclined)
	assert.Equal(t, cleanup.StateAborted, report.State)
	deleter.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestWritePreview(t *testing.T) {
	keys := make([]string, 0, 7)
	for i := 1; i <= 7; i++ {
		keys = append(keys, fmt.Sprintf("attachments/file%d.png", i))
	}
	out := new(bytes.Buffer)

	cleanup.WritePreview(out, buildManifest(keys...))

	text := out.String()
	assert.Contains(t, text, "About to delete 7 orphaned S3 files!")
	assert.Contains(t, text, "- file1.png")
	assert.Contains(t, text, "- file5.png")
	assert.NotContains(t, text, "- file6.png")
	assert.Contains(t, text, "... and 2 more files")
	assert.Contains(t, text, "Bucket: bkt")
}
