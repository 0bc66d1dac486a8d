package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanRecord scans a single kv_store row
func ScanRecord(scanner Scanner) (*Record, error) {
	record := &Record{}
	var updatedAt string

	if err := scanner.Scan(&record.Key, &record.Value, &updatedAt); err != nil {
		return nil, err
	}

	t, err := ParseTimeFromDB(updatedAt)
	if err != nil {
		return nil, err
	}
	record.UpdatedAt = t

	return record, nil
}

// ScanRecords scans multiple kv_store rows
func ScanRecords(rows Rows) ([]*Record, error) {
	var records []*Record
	for rows.Next() {
		record, err := ScanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
