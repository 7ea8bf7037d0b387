package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrSyncMetadataNotFound is returned when the singleton sync metadata
	// row has not been written yet.
	ErrSyncMetadataNotFound = errors.New("sync metadata was not found")

	// ErrLocalChangeNotFound is returned when a local change identified by
	// its id does not exist.
	ErrLocalChangeNotFound = errors.New("local change was not found")

	// ErrLocalChangeNotSaved is returned when an INSERT of a local change
	// completes without error but affects no rows.
	ErrLocalChangeNotSaved = errors.New("local change was not saved")

	// ErrUnsupportedDriver is returned for a database driver the store cannot
	// open.
	ErrUnsupportedDriver = errors.New("unsupported database driver")

	// ErrInvalidChangeData is returned when a change payload cannot be
	// encoded to or decoded from its JSON column.
	ErrInvalidChangeData = errors.New("invalid change data")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrBeginningTransaction is returned when the database driver cannot
	// start a new transaction.
	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = errors.New("failed to scan row")

	// ErrScanningRows is returned when scanning column values during
	// multi-row iteration fails, typically mid-result-set.
	ErrScanningRows = errors.New("failed to scan rows")
)
