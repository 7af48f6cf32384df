package store

import (
	"fmt"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
)

// Fixed keys under which the two application settings are persisted.
const (
	CredentialKey = "gemini_api_key"
	ModelKey      = "selected_model"
)

// Settings wraps a Store with the credential and model contracts: a fixed
// default model id and a fixed enumerated set of allowed ids.
type Settings struct {
	store Store
}

// NewSettings wraps the given store.
func NewSettings(s Store) *Settings {
	return &Settings{store: s}
}

// Credential returns the stored API credential, or ok=false when none is set.
func (s *Settings) Credential() (string, bool, error) {
	return s.store.Get(CredentialKey)
}

// StoreCredential persists the API credential.
func (s *Settings) StoreCredential(credential string) error {
	if credential == "" {
		return fmt.Errorf("credential must not be empty")
	}
	return s.store.Set(CredentialKey, credential)
}

// RemoveCredential deletes the stored API credential.
func (s *Settings) RemoveCredential() error {
	return s.store.Delete(CredentialKey)
}

// Model returns the selected model id, falling back to the default when no
// valid selection is stored.
func (s *Settings) Model() (string, error) {
	value, ok, err := s.store.Get(ModelKey)
	if err != nil {
		return "", err
	}
	if !ok || !llm.IsAllowedModel(value) {
		return llm.DefaultModel, nil
	}
	return value, nil
}

// StoreModel persists the model selection. Ids outside the allowed set are
// rejected.
func (s *Settings) StoreModel(id string) error {
	if !llm.IsAllowedModel(id) {
		return fmt.Errorf("unrecognized model id %q, allowed: %v", id, llm.AllowedModels())
	}
	return s.store.Set(ModelKey, id)
}

// ClearModel removes the selection so Model falls back to the default.
func (s *Settings) ClearModel() error {
	return s.store.Delete(ModelKey)
}

// OnCredentialChange registers fn for external credential changes when the
// underlying store supports watching. Returns false otherwise.
func (s *Settings) OnCredentialChange(fn func(value string, ok bool)) bool {
	watcher, ok := s.store.(Watcher)
	if !ok {
		return false
	}
	watcher.OnExternalChange(CredentialKey, fn)
	return true
}
