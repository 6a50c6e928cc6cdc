package importer

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"solarkeeper/internal/domain/credential"
	"solarkeeper/internal/domain/manufacturer"
	"solarkeeper/internal/domain/plant"
	"solarkeeper/internal/vendorapi"
)

type MockManufacturerRepo struct {
	mock.Mock
}

func (m *MockManufacturerRepo) List(ctx context.Context) ([]manufacturer.Manufacturer, error) {
	args := m.Called(ctx)
	return args.Get(0).([]manufacturer.Manufacturer), args.Error(1)
}

func (m *MockManufacturerRepo) Get(ctx context.Context, id int) (manufacturer.Manufacturer, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(manufacturer.Manufacturer), args.Error(1)
}

type MockCredentialService struct {
	mock.Mock
}

func (m *MockCredentialService) Create(ctx context.Context, userID, manufacturerID int, referenceName string, fields map[string]string) (*credential.Credential, error) {
	args := m.Called(ctx, userID, manufacturerID, referenceName, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockCredentialService) Update(ctx context.Context, userID, credentialID int, referenceName string, fields map[string]string) (*credential.Credential, error) {
	args := m.Called(ctx, userID, credentialID, referenceName, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*credential.Credential), args.Error(1)
}

func (m *MockCredentialService) List(ctx context.Context, userID int) ([]credential.ListItem, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]credential.ListItem), args.Error(1)
}

func (m *MockCredentialService) GetForUse(ctx context.Context, userID, manufacturerID int) (map[string]string, error) {
	args := m.Called(ctx, userID, manufacturerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}

func (m *MockCredentialService) Delete(ctx context.Context, userID, credentialID int) error {
	args := m.Called(ctx, userID, credentialID)
	return args.Error(0)
}

// memPlantRepo emulates the database upsert keyed on
// (user, manufacturer, external id).
type memPlantRepo struct {
	rows   map[string]*plant.Plant
	nextID int
}

func newMemPlantRepo() *memPlantRepo {
	return &memPlantRepo{rows: make(map[string]*plant.Plant), nextID: 1}
}

func (r *memPlantRepo) key(p *plant.Plant) string {
	return fmt.Sprintf("%d/%d/%s", p.UserID, p.ManufacturerID, p.ExternalID)
}

func (r *memPlantRepo) Upsert(_ context.Context, p *plant.Plant) (int, error) {
	if existing, ok := r.rows[r.key(p)]; ok {
		p.ID = existing.ID
		r.rows[r.key(p)] = p
		return existing.ID, nil
	}
	p.ID = r.nextID
	r.nextID++
	r.rows[r.key(p)] = p
	return p.ID, nil
}

func (r *memPlantRepo) List(_ context.Context, userID int) ([]plant.Plant, error) {
	var out []plant.Plant
	for _, p := range r.rows {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

type stubAdapter struct {
	authErr error
	listErr error
	plants  []vendorapi.ExternalPlant
}

func (a *stubAdapter) Authenticate(context.Context, map[string]string) (string, error) {
	if a.authErr != nil {
		return "", a.authErr
	}
	return "tok", nil
}

func (a *stubAdapter) ListPlants(context.Context, string) ([]vendorapi.ExternalPlant, error) {
	if a.listErr != nil {
		return nil, a.listErr
	}
	return a.plants, nil
}

func newTestService(adapter vendorapi.Adapter) (*Service, *MockManufacturerRepo, *MockCredentialService, *memPlantRepo) {
	manRepo := new(MockManufacturerRepo)
	credSvc := new(MockCredentialService)
	plantRepo := newMemPlantRepo()

	registry := vendorapi.NewRegistry()
	if adapter != nil {
		registry.Register("growatt", adapter)
	}

	svc := NewService(manRepo, credSvc, plantRepo, registry, slog.Default())
	return svc, manRepo, credSvc, plantRepo
}

func growattManufacturer() manufacturer.Manufacturer {
	return manufacturer.Manufacturer{ID: 1, Name: "Growatt", APIIdentifier: "growatt", Supported: true}
}

func TestFetchExternalPlants_Success(t *testing.T) {
	power := 5.0
	adapter := &stubAdapter{plants: []vendorapi.ExternalPlant{
		{ExternalID: "123", Name: "Farm A", PowerKWP: &power},
	}}
	svc, manRepo, credSvc, _ := newTestService(adapter)

	manRepo.On("Get", mock.Anything, 1).Return(growattManufacturer(), nil)
	credSvc.On("GetForUse", mock.Anything, 7, 1).Return(map[string]string{"username": "u1", "password": "p1"}, nil)

	plants, err := svc.FetchExternalPlants(context.Background(), 7, 1)
	require.NoError(t, err)
	require.Len(t, plants, 1)
	assert.Equal(t, "123", plants[0].ExternalID)
	assert.Equal(t, "Farm A", plants[0].Name)
	assert.InDelta(t, 5.0, *plants[0].PowerKWP, 1e-9)
}

func TestFetchExternalPlants_StageErrorsSurfaceVerbatim(t *testing.T) {
	t.Run("manufacturer missing", func(t *testing.T) {
		svc, manRepo, _, _ := newTestService(&stubAdapter{})
		manRepo.On("Get", mock.Anything, 9).Return(manufacturer.Manufacturer{}, manufacturer.ErrNotFound)

		_, err := svc.FetchExternalPlants(context.Background(), 7, 9)
		assert.ErrorIs(t, err, manufacturer.ErrNotFound)
	})

	t.Run("unsupported manufacturer", func(t *testing.T) {
		svc, manRepo, _, _ := newTestService(nil)
		manRepo.On("Get", mock.Anything, 1).Return(growattManufacturer(), nil)

		_, err := svc.FetchExternalPlants(context.Background(), 7, 1)
		assert.ErrorIs(t, err, vendorapi.ErrUnsupportedManufacturer)
	})

	t.Run("no stored credential", func(t *testing.T) {
		svc, manRepo, credSvc, _ := newTestService(&stubAdapter{})
		manRepo.On("Get", mock.Anything, 1).Return(growattManufacturer(), nil)
		credSvc.On("GetForUse", mock.Anything, 7, 1).Return(nil, credential.ErrNotFound)

		_, err := svc.FetchExternalPlants(context.Background(), 7, 1)
		assert.ErrorIs(t, err, credential.ErrNotFound)
	})

	t.Run("vendor auth failure", func(t *testing.T) {
		svc, manRepo, credSvc, _ := newTestService(&stubAdapter{authErr: vendorapi.ErrVendorAuth})
		manRepo.On("Get", mock.Anything, 1).Return(growattManufacturer(), nil)
		credSvc.On("GetForUse", mock.Anything, 7, 1).Return(map[string]string{}, nil)

		_, err := svc.FetchExternalPlants(context.Background(), 7, 1)
		assert.ErrorIs(t, err, vendorapi.ErrVendorAuth)
	})

	t.Run("vendor list failure", func(t *testing.T) {
		svc, manRepo, credSvc, _ := newTestService(&stubAdapter{listErr: vendorapi.ErrVendorList})
		manRepo.On("Get", mock.Anything, 1).Return(growattManufacturer(), nil)
		credSvc.On("GetForUse", mock.Anything, 7, 1).Return(map[string]string{}, nil)

		_, err := svc.FetchExternalPlants(context.Background(), 7, 1)
		assert.ErrorIs(t, err, vendorapi.ErrVendorList)
	})
}

func TestImportSelected_Idempotent(t *testing.T) {
	svc, _, _, plantRepo := newTestService(&stubAdapter{})

	power := 5.0
	selections := []Selection{
		{ManufacturerID: 1, ExternalID: "123", Name: "Farm A", PowerKWP: &power},
		{ManufacturerID: 1, ExternalID: "456", Name: "Farm B"},
	}

	first, err := svc.ImportSelected(context.Background(), 7, selections)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Count)
	assert.Len(t, plantRepo.rows, 2)

	// Re-importing the same vendor plants updates rather than duplicates.
	renamed := []Selection{{ManufacturerID: 1, ExternalID: "123", Name: "Farm A (renamed)"}}
	second, err := svc.ImportSelected(context.Background(), 7, renamed)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Count)
	assert.Len(t, plantRepo.rows, 2)

	// The affected identity is the original row.
	assert.Equal(t, first.Plants[0].ID, second.Plants[0].ID)

	plants, err := plantRepo.List(context.Background(), 7)
	require.NoError(t, err)
	names := make(map[string]string)
	for _, p := range plants {
		names[p.ExternalID] = p.Name
	}
	assert.Equal(t, "Farm A (renamed)", names["123"])
	assert.Equal(t, "Farm B", names["456"])
}

func TestImportSelected_DistinctExternalIDs(t *testing.T) {
	svc, _, _, plantRepo := newTestService(&stubAdapter{})

	_, err := svc.ImportSelected(context.Background(), 7, []Selection{
		{ManufacturerID: 1, ExternalID: "a", Name: "A"},
		{ManufacturerID: 1, ExternalID: "b", Name: "B"},
	})
	require.NoError(t, err)
	assert.Len(t, plantRepo.rows, 2)
}

func TestImportSelected_ValidatesBeforeWriting(t *testing.T) {
	svc, _, _, plantRepo := newTestService(&stubAdapter{})

	_, err := svc.ImportSelected(context.Background(), 7, []Selection{
		{ManufacturerID: 1, ExternalID: "ok", Name: "OK"},
		{ManufacturerID: 1, ExternalID: "", Name: "broken"},
	})
	require.Error(t, err)

	// The invalid selection was detected before any row was written.
	assert.Empty(t, plantRepo.rows)
}

func TestImportSelected_OwnersDoNotCollide(t *testing.T) {
	svc, _, _, plantRepo := newTestService(&stubAdapter{})

	sel := []Selection{{ManufacturerID: 1, ExternalID: "123", Name: "Farm A"}}
	_, err := svc.ImportSelected(context.Background(), 7, sel)
	require.NoError(t, err)
	_, err = svc.ImportSelected(context.Background(), 8, sel)
	require.NoError(t, err)

	assert.Len(t, plantRepo.rows, 2)
}

func TestFetchExternalPlants_PermissionDeniedMessage(t *testing.T) {
	authErr := fmt.Errorf("%w: growatt denied API access for this account (code 10011); enable OSS/API permission for the account in the Growatt portal", vendorapi.ErrVendorAuth)
	svc, manRepo, credSvc, _ := newTestService(&stubAdapter{authErr: authErr})
	manRepo.On("Get", mock.Anything, 1).Return(growattManufacturer(), nil)
	credSvc.On("GetForUse", mock.Anything, 7, 1).Return(map[string]string{"username": "u1", "password": "p1"}, nil)

	_, err := svc.FetchExternalPlants(context.Background(), 7, 1)
	require.Error(t, err)

	// The orchestrator must not rewrap the stage error into a generic one.
	assert.True(t, errors.Is(err, vendorapi.ErrVendorAuth))
	assert.Contains(t, err.Error(), "API access")
}
