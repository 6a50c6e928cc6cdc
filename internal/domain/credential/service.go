package credential

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"solarkeeper/internal/app/server/crypto"
	"solarkeeper/internal/domain/manufacturer"
	"solarkeeper/internal/vendorapi"
)

// CipherProvider hands out the process-wide field cipher. It is a function
// so the key stays lazily loaded: a misconfigured deployment fails on the
// first encryption-touching call, not at boot.
type CipherProvider func() (*crypto.FieldCipher, error)

type Servicer interface {
	Create(ctx context.Context, userID, manufacturerID int, referenceName string, fields map[string]string) (*Credential, error)
	Update(ctx context.Context, userID, credentialID int, referenceName string, fields map[string]string) (*Credential, error)
	List(ctx context.Context, userID int) ([]ListItem, error)
	GetForUse(ctx context.Context, userID, manufacturerID int) (map[string]string, error)
	Delete(ctx context.Context, userID, credentialID int) error
}

type Service struct {
	repo          Repository
	manufacturers manufacturer.Repository
	adapters      *vendorapi.Registry
	cipher        CipherProvider
	log           *slog.Logger
}

func NewService(
	repo Repository,
	manufacturers manufacturer.Repository,
	adapters *vendorapi.Registry,
	cipher CipherProvider,
	log *slog.Logger,
) *Service {
	return &Service{
		repo:          repo,
		manufacturers: manufacturers,
		adapters:      adapters,
		cipher:        cipher,
		log:           log.With("component", "credential_service"),
	}
}

// Create stores a new credential for the (user, manufacturer) pair. Fields
// marked sensitive by the manufacturer schema are encrypted before the write;
// a required field missing from the payload fails before anything is stored.
// The stored record is then validated synchronously against the vendor.
func (s *Service) Create(ctx context.Context, userID, manufacturerID int, referenceName string, fields map[string]string) (*Credential, error) {
	man, err := s.manufacturers.Get(ctx, manufacturerID)
	if err != nil {
		return nil, err
	}

	if err := validateAgainstSchema(man.Schema, fields, nil); err != nil {
		return nil, err
	}

	stored, err := s.encryptFields(man.Schema, fields)
	if err != nil {
		return nil, err
	}

	cred := &Credential{
		UserID:         userID,
		ManufacturerID: manufacturerID,
		ReferenceName:  referenceName,
		Fields:         stored,
		Status:         StatusPending,
	}

	cred.ID, err = s.repo.Create(ctx, cred)
	if err != nil {
		if errors.Is(err, ErrConflict) {
			return nil, ErrConflict
		}
		s.log.Error("failed to create credential", "user_id", userID, "manufacturer_id", manufacturerID, "error", err)
		return nil, fmt.Errorf("create credential: %w", err)
	}

	s.validate(ctx, cred, man, fields)

	s.log.Info("credential created", "credential_id", cred.ID, "user_id", userID, "manufacturer_id", manufacturerID, "status", cred.Status)

	return cred, nil
}

// Update merges the incoming payload over the stored credential: only fields
// present in the payload replace prior values, everything else is preserved.
// Required fields must still be satisfied by the merged result.
func (s *Service) Update(ctx context.Context, userID, credentialID int, referenceName string, fields map[string]string) (*Credential, error) {
	cred, err := s.repo.Get(ctx, userID, credentialID)
	if err != nil {
		return nil, err
	}

	man, err := s.manufacturers.Get(ctx, cred.ManufacturerID)
	if err != nil {
		return nil, err
	}

	if err := validateAgainstSchema(man.Schema, fields, cred.Fields); err != nil {
		return nil, err
	}

	incoming, err := s.encryptFields(man.Schema, fields)
	if err != nil {
		return nil, err
	}
	for name, field := range incoming {
		cred.Fields[name] = field
	}

	if referenceName != "" {
		cred.ReferenceName = referenceName
	}
	cred.Status = StatusPending

	if err := s.repo.Update(ctx, cred); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to update credential", "credential_id", credentialID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("update credential: %w", err)
	}

	plain, err := s.decryptFields(cred.Fields)
	if err != nil {
		return nil, err
	}
	s.validate(ctx, cred, man, plain)

	s.log.Info("credential updated", "credential_id", cred.ID, "user_id", userID, "status", cred.Status)

	return cred, nil
}

func (s *Service) List(ctx context.Context, userID int) ([]ListItem, error) {
	creds, err := s.repo.List(ctx, userID)
	if err != nil {
		s.log.Error("failed to list credentials", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list credentials: %w", err)
	}

	names := make(map[int]string)
	if manufacturers, err := s.manufacturers.List(ctx); err == nil {
		for _, m := range manufacturers {
			names[m.ID] = m.Name
		}
	}

	items := make([]ListItem, len(creds))
	for i, c := range creds {
		items[i] = ListItem{
			ID:               c.ID,
			ManufacturerID:   c.ManufacturerID,
			ManufacturerName: names[c.ManufacturerID],
			ReferenceName:    c.ReferenceName,
			Status:           c.Status,
			LastValidatedAt:  c.LastValidatedAt,
			CreatedAt:        c.CreatedAt,
		}
	}

	return items, nil
}

// GetForUse returns the decrypted flat field map for adapter consumption.
// The plaintext lives only for the duration of the calling invocation.
func (s *Service) GetForUse(ctx context.Context, userID, manufacturerID int) (map[string]string, error) {
	cred, err := s.repo.GetByManufacturer(ctx, userID, manufacturerID)
	if err != nil {
		return nil, err
	}

	return s.decryptFields(cred.Fields)
}

func (s *Service) Delete(ctx context.Context, userID, credentialID int) error {
	if err := s.repo.Delete(ctx, userID, credentialID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		s.log.Error("failed to delete credential", "credential_id", credentialID, "user_id", userID, "error", err)
		return fmt.Errorf("delete credential: %w", err)
	}

	s.log.Info("credential deleted", "credential_id", credentialID, "user_id", userID)
	return nil
}

// validate calls the manufacturer's adapter synchronously and records the
// outcome. An auth rejection marks the credential INVALID; an unreachable
// vendor or missing adapter leaves it PENDING. Validation failures never
// fail the surrounding upsert.
func (s *Service) validate(ctx context.Context, cred *Credential, man manufacturer.Manufacturer, plainFields map[string]string) {
	adapter, err := s.adapters.Lookup(man.APIIdentifier)
	if err != nil {
		s.log.Debug("no adapter for manufacturer, credential left pending", "manufacturer", man.APIIdentifier)
		return
	}

	status := StatusValid
	if _, err := adapter.Authenticate(ctx, plainFields); err != nil {
		if errors.Is(err, vendorapi.ErrVendorAuth) {
			status = StatusInvalid
		} else {
			// Vendor unreachable: freshness unknown, keep PENDING.
			s.log.Warn("credential validation skipped, vendor unreachable", "credential_id", cred.ID, "error", err)
			return
		}
	}

	now := time.Now()
	if err := s.repo.SetStatus(ctx, cred.ID, status, now); err != nil {
		s.log.Error("failed to store validation status", "credential_id", cred.ID, "error", err)
		return
	}

	cred.Status = status
	cred.LastValidatedAt = &now
}

// validateAgainstSchema rejects unknown fields and, for creates (existing ==
// nil), any required field that is absent or empty. For updates, a required
// field may be absent from the payload when the stored record already has it.
func validateAgainstSchema(schema []manufacturer.SchemaField, fields map[string]string, existing map[string]StoredField) error {
	known := make(map[string]bool, len(schema))
	for _, spec := range schema {
		known[spec.Name] = true
	}
	for name := range fields {
		if !known[name] {
			return fmt.Errorf("%w: unknown field %q", ErrValidation, name)
		}
	}

	for _, spec := range schema {
		if !spec.Required {
			continue
		}
		if value, ok := fields[spec.Name]; ok {
			if value == "" {
				return fmt.Errorf("%w: required field %q is empty", ErrValidation, spec.Name)
			}
			continue
		}
		if _, ok := existing[spec.Name]; !ok {
			return fmt.Errorf("%w: required field %q is missing", ErrValidation, spec.Name)
		}
	}

	return nil
}

func (s *Service) encryptFields(schema []manufacturer.SchemaField, fields map[string]string) (map[string]StoredField, error) {
	sensitive := make(map[string]bool, len(schema))
	for _, spec := range schema {
		sensitive[spec.Name] = spec.Sensitive()
	}

	stored := make(map[string]StoredField, len(fields))
	for name, value := range fields {
		if !sensitive[name] {
			stored[name] = StoredField{Value: value}
			continue
		}

		cipher, err := s.cipher()
		if err != nil {
			return nil, err
		}
		envelope, err := cipher.Encrypt(value)
		if err != nil {
			return nil, fmt.Errorf("encrypt field %q: %w", name, err)
		}
		stored[name] = StoredField{Nonce: envelope.Nonce, Ciphertext: envelope.Ciphertext}
	}

	return stored, nil
}

func (s *Service) decryptFields(fields map[string]StoredField) (map[string]string, error) {
	plain := make(map[string]string, len(fields))
	for name, field := range fields {
		if !field.Encrypted() {
			plain[name] = field.Value
			continue
		}

		cipher, err := s.cipher()
		if err != nil {
			return nil, err
		}
		value, err := cipher.Decrypt(field.Nonce, field.Ciphertext)
		if err != nil {
			return nil, fmt.Errorf("decrypt field %q: %w", name, err)
		}
		plain[name] = value
	}

	return plain, nil
}
