// Copyright 2025 Haltu Oy
// SPDX-License-Identifier: MIT

package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/mpassid/authdata-service/internal/types"
)

// fixedFieldCount is the number of leading fixed columns in every row:
// username, school, group, role, first name, last name. Attribute values
// follow in the order the attribute names were given on the command line.
const fixedFieldCount = 6

// CSVDriver reads roster records from a headerless comma-separated file.
type CSVDriver struct {
	path           string
	attributeNames []string
}

func (d *CSVDriver) FetchAllRecords(ctx context.Context) ([]*RosterRecord, error) {
	file, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %v", d.path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = fixedFieldCount + len(d.attributeNames)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v", d.path, err)
	}

	records := make([]*RosterRecord, 0, len(rows))
	for _, row := range rows {
		record := &RosterRecord{
			Username:   row[0],
			School:     row[1],
			Group:      row[2],
			Role:       row[3],
			FirstName:  row[4],
			LastName:   row[5],
			Attributes: make([]types.Attribute, 0, len(d.attributeNames)),
		}
		for i, name := range d.attributeNames {
			record.Attributes = append(record.Attributes, types.Attribute{
				Name:  name,
				Value: row[fixedFieldCount+i],
			})
		}
		records = append(records, record)
	}

	return records, nil
}

func NewCSVDriver(path string, attributeNames []string) *CSVDriver {
	d := new(CSVDriver)

	d.path = path
	d.attributeNames = attributeNames

	return d
}
