package validators

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-engine/models"
)

const (
	FieldOperation = "operation"
	FieldData      = "data"
	FieldTable     = "table"
	FieldEntityID  = "entity_id"
)

var changeFields = []string{FieldOperation, FieldData, FieldTable, FieldEntityID}

// ChangeValidator checks local and remote changes against the synced table
// allow-list and the entity id column.
type ChangeValidator struct {
	tables  map[string]struct{}
	idField string
}

// NewChangeValidator returns a validator for changes keyed by idField. An
// empty tables list allows every table with a valid identifier.
func NewChangeValidator(tables []string, idField string) Validator {
	v := &ChangeValidator{idField: idField}
	if idField == "" {
		v.idField = models.DefaultEntityIDField
	}
	if len(tables) > 0 {
		v.tables = make(map[string]struct{}, len(tables))
		for _, t := range tables {
			v.tables[t] = struct{}{}
		}
	}
	return v
}

// Validate accepts [models.TableChange] and [models.LocalChange] values. The
// named fields are checked in the given order; without names every field is
// checked.
func (v *ChangeValidator) Validate(_ context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.TableChange:
		return v.validateChange(value.Table, value.Operation, value.Data, fields...)
	case *models.TableChange:
		return v.validateChange(value.Table, value.Operation, value.Data, fields...)

	case models.LocalChange:
		return v.validateChange(value.Table, value.Operation, value.Data, fields...)
	case *models.LocalChange:
		return v.validateChange(value.Table, value.Operation, value.Data, fields...)

	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}
}

func (v *ChangeValidator) validateChange(table string, op models.Operation, data map[string]any, fields ...string) error {
	if len(fields) == 0 {
		fields = changeFields
	}

	for _, field := range fields {
		switch field {
		case FieldOperation:
			if !op.IsValid() {
				return fmt.Errorf("%w: %q", ErrInvalidOperation, op)
			}
		case FieldData:
			if len(data) == 0 {
				return ErrEmptyData
			}
		case FieldTable:
			if !v.tableAllowed(table) {
				return fmt.Errorf("%w: %q", ErrTableNotSynced, table)
			}
		case FieldEntityID:
			if models.FormatEntityID(data[v.idField]) == "" {
				return fmt.Errorf("%w: field %q in %s", ErrMissingEntityID, v.idField, table)
			}
		default:
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
	}

	return nil
}

func (v *ChangeValidator) tableAllowed(table string) bool {
	if !ValidIdentifier(table) {
		return false
	}
	if v.tables == nil {
		return true
	}
	_, ok := v.tables[table]
	return ok
}
