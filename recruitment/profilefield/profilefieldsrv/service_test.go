package profilefieldsrv

import (
	"context"
	"errors"
	"testing"

	"github.com/Abraxas-365/hirely/pkg/errx"
	"github.com/Abraxas-365/hirely/pkg/kernel"
	"github.com/Abraxas-365/hirely/recruitment/form"
	"github.com/Abraxas-365/hirely/recruitment/profilefield"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Fakes
// ============================================================================

type fakeRepo struct {
	fields  []profilefield.FieldConfig
	listErr error
	lists   int
}

func (r *fakeRepo) List(ctx context.Context) ([]profilefield.FieldConfig, error) {
	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return r.fields, nil
}

func (r *fakeRepo) Upsert(ctx context.Context, field profilefield.FieldConfig) error {
	for i, f := range r.fields {
		if f.ID == field.ID {
			r.fields[i] = field
			return nil
		}
	}
	r.fields = append(r.fields, field)
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, id kernel.FieldID) error {
	for i, f := range r.fields {
		if f.ID == id {
			r.fields = append(r.fields[:i], r.fields[i+1:]...)
			return nil
		}
	}
	return profilefield.ErrFieldNotFound()
}

type fakeCache struct {
	fields      []profilefield.FieldConfig
	ok          bool
	getErr      error
	invalidated int
}

func (c *fakeCache) Get(ctx context.Context) ([]profilefield.FieldConfig, bool, error) {
	return c.fields, c.ok, c.getErr
}

func (c *fakeCache) Set(ctx context.Context, fields []profilefield.FieldConfig) error {
	c.fields, c.ok = fields, true
	return nil
}

func (c *fakeCache) Invalidate(ctx context.Context) error {
	c.fields, c.ok = nil, false
	c.invalidated++
	return nil
}

// ============================================================================
// Tests
// ============================================================================

func TestLoadFieldConfig_Sorted(t *testing.T) {
	repo := &fakeRepo{fields: []profilefield.FieldConfig{
		{ID: "email", Label: "Email", OrderIndex: 2},
		{ID: "full_name", Label: "Full name", OrderIndex: 1},
	}}
	svc := NewService(repo, nil)

	fields, err := svc.LoadFieldConfig(context.Background())

	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, kernel.FieldID("full_name"), fields[0].ID)
}

func TestLoadFieldConfig_EmptyIsNotAnError(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	fields, err := svc.LoadFieldConfig(context.Background())

	require.NoError(t, err)
	assert.Empty(t, fields)
}

func TestLoadFieldConfig_RepositoryFailure(t *testing.T) {
	svc := NewService(&fakeRepo{listErr: errors.New("connection refused")}, nil)

	_, err := svc.LoadFieldConfig(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, profilefield.ErrConfigLoad(nil))
	assert.True(t, errx.IsType(err, errx.TypeExternal))
}

func TestRegistry_ReadsThroughCache(t *testing.T) {
	repo := &fakeRepo{fields: profilefield.DefaultFields()}
	cache := &fakeCache{}
	svc := NewService(repo, cache)

	_, err := svc.Registry(context.Background())
	require.NoError(t, err)
	reg, err := svc.Registry(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, repo.lists, "second load must be served from cache")
	assert.Equal(t, 8, reg.Len())
}

func TestRegistry_CacheErrorFallsBackToRepository(t *testing.T) {
	repo := &fakeRepo{fields: profilefield.DefaultFields()}
	svc := NewService(repo, &fakeCache{getErr: errors.New("redis down")})

	reg, err := svc.Registry(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 8, reg.Len())
	assert.Equal(t, 1, repo.lists)
}

func TestLoadForJob(t *testing.T) {
	svc := NewService(&fakeRepo{fields: profilefield.DefaultFields()}, nil)

	reg, err := svc.LoadForJob(context.Background(), profilefield.Requirements{
		profilefield.FieldPhotoProfile: profilefield.RequirementOff,
		profilefield.FieldGender:       profilefield.RequirementOptional,
	})

	require.NoError(t, err)
	assert.Equal(t, 7, reg.Len())
	gender, _ := reg.Get(profilefield.FieldGender)
	assert.False(t, gender.Mandatory)
}

func TestUpsertField_InvalidatesCache(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(&fakeRepo{}, cache)

	saved, err := svc.UpsertField(context.Background(), profilefield.FieldConfig{ID: "custom_skill", Label: "Skill", OrderIndex: 9})

	require.NoError(t, err)
	assert.Equal(t, "Skill", saved.Label)
	assert.Equal(t, 1, cache.invalidated)
}

func TestUpsertField_Invalid(t *testing.T) {
	svc := NewService(&fakeRepo{}, nil)

	_, err := svc.UpsertField(context.Background(), profilefield.FieldConfig{ID: "x"})

	assert.ErrorIs(t, err, profilefield.ErrInvalidField())
}

func TestUpsertField_RejectsUsedOrderIndex(t *testing.T) {
	repo := &fakeRepo{fields: []profilefield.FieldConfig{
		{ID: "full_name", Label: "Full name", Mandatory: true, OrderIndex: 1},
	}}
	cache := &fakeCache{}
	svc := NewService(repo, cache)

	_, err := svc.UpsertField(context.Background(), profilefield.FieldConfig{ID: "email", Label: "Email", Mandatory: true, OrderIndex: 1})

	require.Error(t, err)
	assert.ErrorIs(t, err, profilefield.ErrInvalidField())
	e, ok := errx.As(err)
	require.True(t, ok)
	assert.Equal(t, "order_index already used", e.Details["reason"])
	assert.Equal(t, "full_name", e.Details["used_by"])
	assert.Len(t, repo.fields, 1, "nothing is written")
	assert.Equal(t, 0, cache.invalidated)

	fields, err := svc.LoadFieldConfig(context.Background())
	require.NoError(t, err)
	v := form.IsSubmittable(fields, form.State{}, false)
	assert.Equal(t, kernel.FieldID("full_name"), v.Field)
}

func TestUpsertField_KeepsOwnOrderIndex(t *testing.T) {
	repo := &fakeRepo{fields: profilefield.DefaultFields()}
	svc := NewService(repo, nil)

	saved, err := svc.UpsertField(context.Background(), profilefield.FieldConfig{ID: profilefield.FieldGender, Label: "Sex", Mandatory: false, OrderIndex: 3})

	require.NoError(t, err)
	assert.Equal(t, "Sex", saved.Label)
}

func TestUpsertField_LoadFailure(t *testing.T) {
	svc := NewService(&fakeRepo{listErr: errors.New("connection refused")}, nil)

	_, err := svc.UpsertField(context.Background(), profilefield.FieldConfig{ID: "email", Label: "Email", OrderIndex: 5})

	assert.ErrorIs(t, err, profilefield.ErrConfigLoad(nil))
}

func TestDeleteField(t *testing.T) {
	cache := &fakeCache{}
	svc := NewService(&fakeRepo{fields: profilefield.DefaultFields()}, cache)

	require.NoError(t, svc.DeleteField(context.Background(), profilefield.FieldLinkedInLink))
	assert.Equal(t, 1, cache.invalidated)

	err := svc.DeleteField(context.Background(), "missing")
	assert.ErrorIs(t, err, profilefield.ErrFieldNotFound())
}
