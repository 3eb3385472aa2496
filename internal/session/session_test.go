package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aknishi/studium/internal/content"
	"github.com/aknishi/studium/internal/inference"
	"github.com/aknishi/studium/internal/study"
)

func TestManager_CreateAndGet(t *testing.T) {
	manager := NewManager()
	profile := study.Profile{AcademicLevel: "graduate", Specialization: "law"}

	id := manager.Create(profile)
	require.NotEmpty(t, id)

	got, err := manager.Get(id)
	require.NoError(t, err)
	assert.Equal(t, profile, got.Profile)
	assert.Empty(t, got.Subject)

	_, err = manager.Get("missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	other := manager.Create(profile)
	assert.NotEqual(t, id, other)
}

func TestManager_SetSubjectClearsSelection(t *testing.T) {
	manager := NewManager()
	id := manager.Create(study.Profile{})

	selection := study.TopicSelection{Topics: []string{"Contracts"}}
	require.NoError(t, manager.SetSelection(id, selection))

	units := []inference.SyllabusUnit{{Unit: "Unit 1", Topics: []string{"Torts"}}}
	require.NoError(t, manager.SetSubject(id, "Law", units))

	got, err := manager.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "Law", got.Subject)
	assert.Equal(t, units, got.Units)
	assert.True(t, got.Selection.IsEmpty())
}

func TestManager_GenerationLifecycle(t *testing.T) {
	manager := NewManager()
	id := manager.Create(study.Profile{})

	token, err := manager.BeginGeneration(id)
	require.NoError(t, err)

	_, err = manager.BeginGeneration(id)
	assert.ErrorIs(t, err, ErrGenerationInFlight)

	result := content.ProseResult{Text: "done"}
	applied, err := manager.CompleteGeneration(id, token, content.FormatOverview, result)
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := manager.Get(id)
	require.NoError(t, err)
	assert.Equal(t, content.FormatOverview, got.LastFormat)
	assert.Equal(t, result, got.LastResult)

	// the slot is free again
	_, err = manager.BeginGeneration(id)
	require.NoError(t, err)
}

func TestManager_StaleResultIsDiscarded(t *testing.T) {
	manager := NewManager()
	id := manager.Create(study.Profile{})

	stale, err := manager.BeginGeneration(id)
	require.NoError(t, err)
	require.NoError(t, manager.AbandonGeneration(id, stale))

	current, err := manager.BeginGeneration(id)
	require.NoError(t, err)

	applied, err := manager.CompleteGeneration(id, stale, content.FormatOverview, content.ProseResult{Text: "old"})
	require.NoError(t, err)
	assert.False(t, applied)

	applied, err = manager.CompleteGeneration(id, current, content.FormatKeyTakeaways, content.ProseResult{Text: "new"})
	require.NoError(t, err)
	assert.True(t, applied)

	got, err := manager.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "new", got.LastResult.(content.ProseResult).Text)
}

func TestManager_AbandonGeneration(t *testing.T) {
	manager := NewManager()
	id := manager.Create(study.Profile{})

	token, err := manager.BeginGeneration(id)
	require.NoError(t, err)
	require.NoError(t, manager.AbandonGeneration(id, token))

	// abandoning twice with the same token reports there is nothing pending
	assert.ErrorIs(t, manager.AbandonGeneration(id, token), ErrNoGenerationPending)

	// a stale token is a no-op
	_, err = manager.BeginGeneration(id)
	require.NoError(t, err)
	assert.NoError(t, manager.AbandonGeneration(id, token))
}

func TestManager_Delete(t *testing.T) {
	manager := NewManager()
	id := manager.Create(study.Profile{})

	manager.Delete(id)
	_, err := manager.Get(id)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	manager.Delete("missing")
}

func TestManager_ConcurrentAccess(t *testing.T) {
	manager := NewManager()
	id := manager.Create(study.Profile{})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			token, err := manager.BeginGeneration(id)
			if err != nil {
				return
			}
			_, _ = manager.CompleteGeneration(id, token, content.FormatOverview, content.ProseResult{Text: "x"})
		}()
	}
	wg.Wait()

	got, err := manager.Get(id)
	require.NoError(t, err)
	assert.NotNil(t, got.LastResult)
}
