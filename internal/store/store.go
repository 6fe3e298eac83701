// Package store persists engine state as JSON files in a data directory.
//
// Each collection lives in its own file and is written whole: a save
// replaces the previous contents via a temp file and rename, so a crash
// mid-write never leaves a half-written file behind. Missing files read
// as empty collections.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"household-budget-engine/internal/budget"
	"household-budget-engine/internal/classify"
	"household-budget-engine/internal/ingest"
	"household-budget-engine/internal/models"
	"household-budget-engine/pkg/errors"
	"household-budget-engine/pkg/logger"
)

const (
	transactionsFile = "transactions.json"
	categoriesFile   = "categories.json"
	mappingsFile     = "merchant_mappings.json"
	profilesFile     = "mapping_profiles.json"
	planFile         = "plan.json"
)

// DefaultProfileName is the profile slot used when the user saves a
// mapping without naming it.
const DefaultProfileName = "default"

// Store reads and writes engine state under a single directory.
type Store struct {
	dir    string
	logger logger.Logger
}

// Open prepares a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.InternalError(errors.CodeStorageError, "create data directory", err)
	}
	return &Store{
		dir:    dir,
		logger: logger.WithComponent("store"),
	}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// LoadTransactions reads the saved transaction list. A missing file is an
// empty list.
func (s *Store) LoadTransactions() ([]*models.Transaction, error) {
	var txs []*models.Transaction
	if err := s.readJSON(transactionsFile, &txs); err != nil {
		return nil, err
	}
	return txs, nil
}

// SaveTransactions writes the full transaction list, dropping ignored
// entries first.
func (s *Store) SaveTransactions(txs []*models.Transaction) error {
	return s.writeJSON(transactionsFile, models.PersistableTransactions(txs))
}

// LoadCategories reads the saved category list.
func (s *Store) LoadCategories() ([]*models.Category, error) {
	var cats []*models.Category
	if err := s.readJSON(categoriesFile, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

// SaveCategories writes the full category list.
func (s *Store) SaveCategories(cats []*models.Category) error {
	return s.writeJSON(categoriesFile, cats)
}

// LoadMerchantMappings reads the learned merchant store. A missing file
// is an empty store.
func (s *Store) LoadMerchantMappings() (*classify.MerchantMappings, error) {
	mappings := classify.NewMerchantMappings()
	if err := s.readJSON(mappingsFile, mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

// SaveMerchantMappings writes the learned merchant store.
func (s *Store) SaveMerchantMappings(m *classify.MerchantMappings) error {
	return s.writeJSON(mappingsFile, m)
}

// LoadProfiles reads saved column-mapping profiles keyed by name.
func (s *Store) LoadProfiles() (map[string]*ingest.ColumnMapping, error) {
	profiles := make(map[string]*ingest.ColumnMapping)
	if err := s.readJSON(profilesFile, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SaveProfile stores a column mapping under the given name.
func (s *Store) SaveProfile(name string, mapping *ingest.ColumnMapping) error {
	if name == "" {
		name = DefaultProfileName
	}
	profiles, err := s.LoadProfiles()
	if err != nil {
		return err
	}
	profiles[name] = mapping
	return s.writeJSON(profilesFile, profiles)
}

// LoadProfile returns the named mapping profile.
func (s *Store) LoadProfile(name string) (*ingest.ColumnMapping, error) {
	profiles, err := s.LoadProfiles()
	if err != nil {
		return nil, err
	}
	mapping, ok := profiles[name]
	if !ok {
		return nil, errors.MappingError(errors.CodeUnknownProfile, name)
	}
	return mapping, nil
}

// LoadPlan reads the budget plan. A missing file is an empty plan.
func (s *Store) LoadPlan() (*budget.Plan, error) {
	plan := &budget.Plan{}
	if err := s.readJSON(planFile, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// SavePlan writes the budget plan.
func (s *Store) SavePlan(plan *budget.Plan) error {
	return s.writeJSON(planFile, plan)
}

func (s *Store) readJSON(name string, v interface{}) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.InternalError(errors.CodeStorageError, "read "+name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return errors.InternalError(errors.CodeStorageError, "decode "+name, err)
	}
	return nil
}

func (s *Store) writeJSON(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.InternalError(errors.CodeStorageError, "encode "+name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return errors.InternalError(errors.CodeStorageError, "write "+name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.InternalError(errors.CodeStorageError, "write "+name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.InternalError(errors.CodeStorageError, "write "+name, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.InternalError(errors.CodeStorageError, "write "+name, err)
	}

	s.logger.WithField("file", name).Debug("Wrote data file")
	return nil
}
