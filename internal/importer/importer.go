// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package importer

import (
	"context"
	"fmt"

	"github.com/mpassid/authdata-service/internal/logging"
	"github.com/mpassid/authdata-service/internal/storage"
	"github.com/mpassid/authdata-service/internal/types"
)

// StorageInterface defines the storage operations required by the Importer.
type StorageInterface interface {
	GetUserByUsername(ctx context.Context, username string) (*types.LocalUser, error)
	AddAttendance(ctx context.Context, entry *storage.RosterEntry) error
	UpsertUserAttribute(ctx context.Context, userID int64, name, value, dataSource string) error
}

// Importer handles the bulk import of roster records from a driver into the
// local database.
type Importer struct {
	driver       DriverInterface
	storage      StorageInterface
	source       string
	municipality string
	dryRun       bool

	logger logging.LoggerInterface
}

// Run fetches all records from the driver and upserts users, attendances and
// attributes. Rows with an unrecognized role are skipped with a warning, the
// rest of the file is still imported. In dry-run mode records are only
// logged.
func (i *Importer) Run(ctx context.Context) error {
	records, err := i.driver.FetchAllRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch records from driver: %w", err)
	}

	i.logger.Infof("Fetched %d roster records from driver", len(records))

	imported := 0
	for _, record := range records {
		role, ok := types.ParseRoleType(record.Role)
		if !ok {
			i.logger.Warnf("Skipping %q: unrecognized role %q", record.Username, record.Role)
			continue
		}

		if i.dryRun {
			i.logger.Infof("Would import %q (%s at %s)", record.Username, role, record.School)
			continue
		}

		entry := &storage.RosterEntry{
			Username:     record.Username,
			FirstName:    record.FirstName,
			LastName:     record.LastName,
			School:       record.School,
			SchoolID:     record.School,
			Municipality: i.municipality,
			Group:        record.Group,
			Role:         string(role),
			Source:       i.source,
		}
		if err := i.storage.AddAttendance(ctx, entry); err != nil {
			i.logger.Errorf("Failed to import %q: %v", record.Username, err)
			continue
		}

		user, err := i.storage.GetUserByUsername(ctx, record.Username)
		if err != nil {
			i.logger.Errorf("Failed to read back %q: %v", record.Username, err)
			continue
		}
		for _, attribute := range record.Attributes {
			if err := i.storage.UpsertUserAttribute(ctx, user.ID, attribute.Name, attribute.Value, i.source); err != nil {
				i.logger.Errorf("Failed to store attribute %q for %q: %v", attribute.Name, record.Username, err)
			}
		}

		imported++
	}

	i.logger.Infof("Import complete: %d records imported", imported)
	return nil
}

// NewImporter creates a new Importer with the given driver, storage, and logger.
func NewImporter(driver DriverInterface, storage StorageInterface, source, municipality string, dryRun bool, logger logging.LoggerInterface) *Importer {
	i := new(Importer)

	i.driver = driver
	i.storage = storage
	i.source = source
	i.municipality = municipality
	i.dryRun = dryRun

	i.logger = logger

	return i
}
