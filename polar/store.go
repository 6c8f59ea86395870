package polar

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Store keeps one yaml file per polar, named after its id. Active polars
// live in polarsDir, archived ones in archivedDir. The filesystem is the
// only source of truth, there is no locking between callers.
type Store struct {
	polarsDir   string
	archivedDir string
}

func createDir(dir string) error {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating dir %s : %w", dir, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("error checking dir %s : %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

func New(polarsDir string, archivedDir string) (*Store, error) {
	if err := createDir(polarsDir); err != nil {
		return nil, err
	}
	if err := createDir(archivedDir); err != nil {
		return nil, err
	}
	return &Store{polarsDir: polarsDir, archivedDir: archivedDir}, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.polarsDir, id+".yaml")
}

func (s *Store) archivedPath(id string) string {
	return filepath.Join(s.archivedDir, id+".yaml")
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// List returns the polars of one directory, active by default, archived when
// asked. Entries that fail to decode are skipped, not fatal. Order is
// directory order.
func (s *Store) List(archived bool) ([]Polar, error) {
	dir := s.polarsDir
	if archived {
		dir = s.archivedDir
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("error reading dir %s : %w", dir, err)
	}

	res := []Polar{}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			log.WithError(err).Errorf("Couldn't get metadata for '%s'", entry.Name())
			continue
		}
		if !info.Mode().IsRegular() || filepath.Ext(entry.Name()) != ".yaml" {
			continue
		}

		polar, err := readPolar(filepath.Join(dir, entry.Name()))
		if err != nil {
			log.WithError(err).Errorf("Error reading file '%s'", entry.Name())
			continue
		}
		polar.Id = strings.TrimSuffix(entry.Name(), ".yaml")
		polar.Archived = archived
		res = append(res, *polar)
	}

	return res, nil
}

// Get looks for the id in the active directory first, then the archived one.
// It returns nil when the polar exists in neither. The filename always wins
// over the id embedded in the file.
func (s *Store) Get(id string) (*Polar, error) {
	path := s.path(id)
	archived := false
	if !exists(path) {
		path = s.archivedPath(id)
		archived = true
		if !exists(path) {
			return nil, nil
		}
	}

	polar, err := readPolar(path)
	if err != nil {
		return nil, err
	}
	polar.Id = id
	polar.Archived = archived
	return polar, nil
}

// FindByPolarId returns the first polar carrying the given polarId, active
// polars before archived ones. polarId is not unique, first match wins.
func (s *Store) FindByPolarId(polarId uint8) (*Polar, error) {
	polars, err := s.List(false)
	if err != nil {
		return nil, err
	}
	for i := range polars {
		if polars[i].PolarId == polarId {
			return &polars[i], nil
		}
	}

	polars, err = s.List(true)
	if err != nil {
		return nil, err
	}
	for i := range polars {
		if polars[i].PolarId == polarId {
			return &polars[i], nil
		}
	}
	return nil, nil
}

// Create writes a new active polar. Only the active directory is checked for
// an existing id, an archived polar with the same id does not block creation.
func (s *Store) Create(polar *Polar) error {
	if polar.Id == "" {
		return ErrIdMandatory
	}

	path := s.path(polar.Id)
	if exists(path) {
		return &AlreadyExistsError{Id: polar.Id}
	}

	if err := savePolar(path, polar); err != nil {
		log.WithError(err).Errorf("Error saving polar '%s'", path)
		return err
	}
	return nil
}

// Update overwrites the active polar at id. When the body carries a
// different id the old file is removed and a new one is written, without
// checking that the new path is free.
func (s *Store) Update(id string, polar *Polar) error {
	path := s.path(id)
	if !exists(path) {
		return &NotFoundError{Id: id}
	}

	if polar.Id != "" && polar.Id != id {
		// the id changed. must remove the old file and create a new one.
		if err := os.Remove(path); err != nil {
			log.WithError(err).Errorf("Error removing file '%s'", path)
			return fmt.Errorf("error removing file %s : %w", path, err)
		}
		path = s.path(polar.Id)
	}

	if err := savePolar(path, polar); err != nil {
		log.WithError(err).Errorf("Error saving polar '%s'", path)
		return err
	}
	return nil
}

// Delete removes the polar, active or archived.
func (s *Store) Delete(id string) error {
	path := s.path(id)
	if !exists(path) {
		path = s.archivedPath(id)
		if !exists(path) {
			return &NotFoundError{Id: id}
		}
	}

	if err := os.Remove(path); err != nil {
		log.WithError(err).Errorf("Error removing file '%s'", path)
		return fmt.Errorf("error removing file %s : %w", path, err)
	}
	return nil
}

// Archive moves the polar file to the archived directory, content untouched.
func (s *Store) Archive(id string) error {
	path := s.path(id)
	if !exists(path) {
		return &NotFoundError{Id: id}
	}
	return rename(path, s.archivedPath(id))
}

// Restore moves an archived polar back to the active directory. It refuses
// to overwrite an active polar with the same id.
func (s *Store) Restore(id string) error {
	archived := s.archivedPath(id)
	if !exists(archived) {
		return &NotFoundError{Id: id}
	}

	path := s.path(id)
	if exists(path) {
		return &AlreadyExistsError{Id: id}
	}
	return rename(archived, path)
}

func rename(from string, to string) error {
	if err := os.Rename(from, to); err != nil {
		log.WithError(err).Errorf("Error moving file '%s' to '%s'", from, to)
		return fmt.Errorf("error moving file %s to %s : %w", from, to, err)
	}
	return nil
}
