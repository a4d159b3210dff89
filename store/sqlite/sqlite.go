/*
Package sqlite provides the SQLite-backed implementation of every storage
interface in the application.

INTERFACES IMPLEMENTED:
  thirdparty.TxStore: contractors, work orders, payment transactions
  works.Store:        divisions, consultancy works, quotation registry
  org.Store:          employee roster, org hierarchy
  auth.UserStore:     users and role assignments

TRANSACTIONAL WRITES:
  WithTx runs a function against a view of the third-party store bound to a
  single database transaction. Recording a payment uses it so the transaction
  insert and the stage-flag update commit or roll back together.

APPEND-ONLY LEDGER:
  There are no UPDATE or DELETE statements for third_party_transactions. The
  only way a transaction row disappears is the cascade when its work order or
  contractor is deleted.

AMOUNT STORAGE:
  Monetary values are stored as decimal strings (TEXT), never floats, and
  parsed back through the money package.

WAL MODE:
  SQLite is opened with WAL and foreign keys on. Contractor deletion cascades
  to work orders and their transactions via the schema.

MIGRATION:
  Schema is created on New(). Use ":memory:" for tests and local dev.

SEE ALSO:
  - thirdparty/store.go: interface definitions
  - thirdparty/service.go: the payment workflow that depends on WithTx
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/ubce/backoffice/auth"
	"github.com/ubce/backoffice/ledger"
	"github.com/ubce/backoffice/money"
	"github.com/ubce/backoffice/org"
	"github.com/ubce/backoffice/thirdparty"
	"github.com/ubce/backoffice/works"
)

// dbtx is the subset of *sql.DB and *sql.Tx the queries need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements all storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	tpQueries
}

// New opens (or creates) the database at path and migrates the schema.
// Use ":memory:" for an in-memory database.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, tpQueries: tpQueries{q: db}}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contractors (
		id TEXT PRIMARY KEY,
		ub_id TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL,
		qualification TEXT,
		category TEXT NOT NULL,
		aadhar_number TEXT,
		pan_number TEXT,
		age INTEGER,
		gender TEXT,
		mobile TEXT,
		email TEXT,
		address TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS third_party_works (
		id TEXT PRIMARY KEY,
		contractor_id TEXT NOT NULL REFERENCES contractors(id) ON DELETE CASCADE,
		qt_no TEXT NOT NULL,
		work_name TEXT NOT NULL,
		client_name TEXT,
		quoted_amount TEXT NOT NULL,
		sanction_amount TEXT NOT NULL,
		stage1_status TEXT NOT NULL, stage1_paid_at TEXT,
		stage2_status TEXT NOT NULL, stage2_paid_at TEXT,
		stage3_status TEXT NOT NULL, stage3_paid_at TEXT,
		stage4_status TEXT NOT NULL, stage4_paid_at TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tp_works_contractor
		ON third_party_works(contractor_id);

	-- Append-only payment ledger. No UPDATE, no DELETE.
	CREATE TABLE IF NOT EXISTS third_party_transactions (
		id TEXT PRIMARY KEY,
		work_id TEXT NOT NULL REFERENCES third_party_works(id) ON DELETE CASCADE,
		stage_number INTEGER NOT NULL,
		stage_name TEXT NOT NULL,
		amount TEXT NOT NULL,
		payment_date TEXT NOT NULL,
		payment_mode TEXT NOT NULL,
		transaction_ref TEXT,
		remarks TEXT,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_tp_transactions_work
		ON third_party_transactions(work_id);
	CREATE INDEX IF NOT EXISTS idx_tp_transactions_work_stage
		ON third_party_transactions(work_id, stage_number);

	CREATE TABLE IF NOT EXISTS divisions (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		code TEXT NOT NULL UNIQUE,
		description TEXT,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS works (
		id TEXT PRIMARY KEY,
		ubqn TEXT NOT NULL,
		division_id TEXT NOT NULL REFERENCES divisions(id),
		work_name TEXT NOT NULL,
		client_name TEXT,
		consultancy_cost TEXT NOT NULL,
		status TEXT NOT NULL,
		subcategory TEXT,
		order_no TEXT,
		order_date TEXT,
		invoice_no TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_works_division ON works(division_id);

	CREATE TABLE IF NOT EXISTS quotations (
		id TEXT PRIMARY KEY,
		ubqn TEXT NOT NULL UNIQUE,
		section TEXT,
		quotation_date TEXT NOT NULL,
		client_name TEXT,
		subject TEXT,
		consultancy_cost TEXT NOT NULL,
		division_id TEXT,
		version_no INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT NOT NULL,
		role TEXT NOT NULL,
		division_id TEXT,
		phone TEXT,
		active INTEGER NOT NULL DEFAULT 1,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS org_hierarchy (
		id TEXT PRIMARY KEY,
		position_name TEXT NOT NULL,
		position_order INTEGER NOT NULL,
		employee_id TEXT,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT,
		role TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// TRANSACTIONAL EXECUTION
// =============================================================================

// WithTx executes fn against a third-party store view bound to one database
// transaction.
func (s *Store) WithTx(ctx context.Context, fn func(thirdparty.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	view := &tpQueries{q: tx}
	if err := fn(view); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

// tpQueries implements thirdparty.Store against either the database or an
// open transaction.
type tpQueries struct {
	q dbtx
}

var _ thirdparty.Store = (*tpQueries)(nil)
var _ thirdparty.TxStore = (*Store)(nil)

// =============================================================================
// CONTRACTORS
// =============================================================================

const contractorCols = `id, ub_id, name, qualification, category, aadhar_number,
	pan_number, age, gender, mobile, email, address, created_at, updated_at`

func (t *tpQueries) ListContractors(ctx context.Context) ([]thirdparty.Contractor, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT `+contractorCols+` FROM contractors ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []thirdparty.Contractor
	for rows.Next() {
		c, err := scanContractor(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (t *tpQueries) GetContractor(ctx context.Context, id string) (*thirdparty.Contractor, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT `+contractorCols+` FROM contractors WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, thirdparty.ErrContractorNotFound
	}
	c, err := scanContractor(rows)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (t *tpQueries) InsertContractor(ctx context.Context, c thirdparty.Contractor) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO contractors (`+contractorCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.UBID, c.Name, nullString(c.Qualification), string(c.Category),
		nullString(c.AadharNumber), nullString(c.PANNumber), c.Age,
		nullString(c.Gender), nullString(c.Mobile), nullString(c.Email),
		nullString(c.Address), fmtTime(c.CreatedAt), fmtTime(c.UpdatedAt))
	return err
}

func (t *tpQueries) UpdateContractor(ctx context.Context, c thirdparty.Contractor) error {
	res, err := t.q.ExecContext(ctx, `
		UPDATE contractors SET name = ?, qualification = ?, category = ?,
			aadhar_number = ?, pan_number = ?, age = ?, gender = ?, mobile = ?,
			email = ?, address = ?, updated_at = ?
		WHERE id = ?`,
		c.Name, nullString(c.Qualification), string(c.Category),
		nullString(c.AadharNumber), nullString(c.PANNumber), c.Age,
		nullString(c.Gender), nullString(c.Mobile), nullString(c.Email),
		nullString(c.Address), fmtTime(c.UpdatedAt), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res, thirdparty.ErrContractorNotFound)
}

func (t *tpQueries) DeleteContractor(ctx context.Context, id string) error {
	// Work orders and their transactions go with it via ON DELETE CASCADE.
	res, err := t.q.ExecContext(ctx, `DELETE FROM contractors WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, thirdparty.ErrContractorNotFound)
}

func (t *tpQueries) CountContractors(ctx context.Context) (int, error) {
	var n int
	err := t.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM contractors`).Scan(&n)
	return n, err
}

func scanContractor(rows *sql.Rows) (thirdparty.Contractor, error) {
	var (
		c                              thirdparty.Contractor
		qualification, aadhar, pan     sql.NullString
		gender, mobile, email, address sql.NullString
		age                            sql.NullInt64
		createdAt, updatedAt           string
	)
	err := rows.Scan(&c.ID, &c.UBID, &c.Name, &qualification, (*string)(&c.Category),
		&aadhar, &pan, &age, &gender, &mobile, &email, &address, &createdAt, &updatedAt)
	if err != nil {
		return c, err
	}
	c.Qualification = qualification.String
	c.AadharNumber = aadhar.String
	c.PANNumber = pan.String
	c.Age = int(age.Int64)
	c.Gender = gender.String
	c.Mobile = mobile.String
	c.Email = email.String
	c.Address = address.String
	c.CreatedAt = parseTime(createdAt)
	c.UpdatedAt = parseTime(updatedAt)
	return c, nil
}

// =============================================================================
// WORK ORDERS
// =============================================================================

const workOrderCols = `id, contractor_id, qt_no, work_name, client_name,
	quoted_amount, sanction_amount,
	stage1_status, stage1_paid_at, stage2_status, stage2_paid_at,
	stage3_status, stage3_paid_at, stage4_status, stage4_paid_at,
	created_at, updated_at`

func (t *tpQueries) ListWorkOrders(ctx context.Context, contractorID string) ([]thirdparty.WorkOrder, error) {
	query := `SELECT ` + workOrderCols + ` FROM third_party_works`
	var args []any
	if contractorID != "" {
		query += ` WHERE contractor_id = ?`
		args = append(args, contractorID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []thirdparty.WorkOrder
	for rows.Next() {
		w, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (t *tpQueries) GetWorkOrder(ctx context.Context, id string) (*thirdparty.WorkOrder, error) {
	rows, err := t.q.QueryContext(ctx,
		`SELECT `+workOrderCols+` FROM third_party_works WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, thirdparty.ErrWorkOrderNotFound
	}
	w, err := scanWorkOrder(rows)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (t *tpQueries) InsertWorkOrder(ctx context.Context, w thirdparty.WorkOrder) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO third_party_works (`+workOrderCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.ContractorID, w.QtNo, w.WorkName, nullString(w.ClientName),
		w.QuotedAmount.String(), w.SanctionAmount.String(),
		string(w.Stages[0].Status), nullTime(w.Stages[0].PaidAt),
		string(w.Stages[1].Status), nullTime(w.Stages[1].PaidAt),
		string(w.Stages[2].Status), nullTime(w.Stages[2].PaidAt),
		string(w.Stages[3].Status), nullTime(w.Stages[3].PaidAt),
		fmtTime(w.CreatedAt), fmtTime(w.UpdatedAt))
	return err
}

func (t *tpQueries) UpdateWorkOrder(ctx context.Context, w thirdparty.WorkOrder) error {
	res, err := t.q.ExecContext(ctx, `
		UPDATE third_party_works SET qt_no = ?, work_name = ?, client_name = ?,
			quoted_amount = ?, sanction_amount = ?, updated_at = ?
		WHERE id = ?`,
		w.QtNo, w.WorkName, nullString(w.ClientName),
		w.QuotedAmount.String(), w.SanctionAmount.String(),
		fmtTime(w.UpdatedAt), w.ID)
	if err != nil {
		return err
	}
	return requireRow(res, thirdparty.ErrWorkOrderNotFound)
}

func (t *tpQueries) DeleteWorkOrder(ctx context.Context, id string) error {
	res, err := t.q.ExecContext(ctx, `DELETE FROM third_party_works WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, thirdparty.ErrWorkOrderNotFound)
}

func (t *tpQueries) UpdateStageFlag(ctx context.Context, workID string, stage ledger.Stage, status thirdparty.StageStatus, paidAt *time.Time) error {
	if !stage.Valid() {
		return thirdparty.ErrInvalidStage
	}
	// Column names derive from a validated 1..4 stage, never from raw input.
	query := fmt.Sprintf(`
		UPDATE third_party_works
		SET stage%d_status = ?, stage%d_paid_at = ?, updated_at = ?
		WHERE id = ?`, stage, stage)

	res, err := t.q.ExecContext(ctx, query,
		string(status), nullTime(paidAt), fmtTime(time.Now()), workID)
	if err != nil {
		return err
	}
	return requireRow(res, thirdparty.ErrWorkOrderNotFound)
}

func scanWorkOrder(rows *sql.Rows) (thirdparty.WorkOrder, error) {
	var (
		w                    thirdparty.WorkOrder
		clientName           sql.NullString
		quoted, sanction     string
		statuses             [ledger.StageCount]string
		paidAts              [ledger.StageCount]sql.NullString
		createdAt, updatedAt string
	)
	err := rows.Scan(&w.ID, &w.ContractorID, &w.QtNo, &w.WorkName, &clientName,
		&quoted, &sanction,
		&statuses[0], &paidAts[0], &statuses[1], &paidAts[1],
		&statuses[2], &paidAts[2], &statuses[3], &paidAts[3],
		&createdAt, &updatedAt)
	if err != nil {
		return w, err
	}
	w.ClientName = clientName.String
	w.QuotedAmount = money.Parse(quoted)
	w.SanctionAmount = money.Parse(sanction)
	for i := 0; i < ledger.StageCount; i++ {
		w.Stages[i] = thirdparty.StageFlag{
			Status: thirdparty.StageStatus(statuses[i]),
			PaidAt: parseNullTime(paidAts[i]),
		}
	}
	w.CreatedAt = parseTime(createdAt)
	w.UpdatedAt = parseTime(updatedAt)
	return w, nil
}

// =============================================================================
// TRANSACTIONS (append-only)
// =============================================================================

const transactionCols = `id, work_id, stage_number, stage_name, amount,
	payment_date, payment_mode, transaction_ref, remarks, created_at`

func (t *tpQueries) ListTransactions(ctx context.Context, workIDs []string) ([]thirdparty.Transaction, error) {
	query := `SELECT ` + transactionCols + ` FROM third_party_transactions`
	var args []any
	if len(workIDs) > 0 {
		placeholders := strings.Repeat("?,", len(workIDs))
		query += ` WHERE work_id IN (` + placeholders[:len(placeholders)-1] + `)`
		for _, id := range workIDs {
			args = append(args, id)
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := t.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []thirdparty.Transaction
	for rows.Next() {
		var (
			tx           thirdparty.Transaction
			stage        int
			amount       string
			paymentDate  string
			ref, remarks sql.NullString
			createdAt    string
		)
		err := rows.Scan(&tx.ID, &tx.WorkID, &stage, &tx.StageName, &amount,
			&paymentDate, (*string)(&tx.Mode), &ref, &remarks, &createdAt)
		if err != nil {
			return nil, err
		}
		tx.Stage = ledger.Stage(stage)
		tx.Amount = money.Parse(amount)
		tx.PaymentDate = parseTime(paymentDate)
		tx.Ref = ref.String
		tx.Remarks = remarks.String
		tx.CreatedAt = parseTime(createdAt)
		out = append(out, tx)
	}
	return out, rows.Err()
}

func (t *tpQueries) InsertTransaction(ctx context.Context, tx thirdparty.Transaction) error {
	_, err := t.q.ExecContext(ctx, `
		INSERT INTO third_party_transactions (`+transactionCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.WorkID, int(tx.Stage), tx.StageName, tx.Amount.String(),
		fmtTime(tx.PaymentDate), string(tx.Mode),
		nullString(tx.Ref), nullString(tx.Remarks), fmtTime(tx.CreatedAt))
	return err
}

// =============================================================================
// DIVISIONS, WORKS, QUOTATIONS (works.Store)
// =============================================================================

var _ works.Store = (*Store)(nil)

func (s *Store) ListDivisions(ctx context.Context) ([]works.Division, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, code, description, created_at FROM divisions ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []works.Division
	for rows.Next() {
		var (
			d           works.Division
			description sql.NullString
			createdAt   string
		)
		if err := rows.Scan(&d.ID, &d.Name, &d.Code, &description, &createdAt); err != nil {
			return nil, err
		}
		d.Description = description.String
		d.CreatedAt = parseTime(createdAt)
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) GetDivisionByCode(ctx context.Context, code string) (*works.Division, error) {
	var (
		d           works.Division
		description sql.NullString
		createdAt   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, code, description, created_at FROM divisions WHERE code = ?`, code).
		Scan(&d.ID, &d.Name, &d.Code, &description, &createdAt)
	if err == sql.ErrNoRows {
		return nil, works.ErrDivisionNotFound
	}
	if err != nil {
		return nil, err
	}
	d.Description = description.String
	d.CreatedAt = parseTime(createdAt)
	return &d, nil
}

func (s *Store) InsertDivision(ctx context.Context, d works.Division) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO divisions (id, name, code, description, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.Code, nullString(d.Description), fmtTime(d.CreatedAt))
	return err
}

const workCols = `id, ubqn, division_id, work_name, client_name, consultancy_cost,
	status, subcategory, order_no, order_date, invoice_no, created_at, updated_at`

func (s *Store) ListWorks(ctx context.Context) ([]works.Work, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+workCols+` FROM works ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []works.Work
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (s *Store) GetWork(ctx context.Context, id string) (*works.Work, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+workCols+` FROM works WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, works.ErrWorkNotFound
	}
	w, err := scanWork(rows)
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *Store) InsertWork(ctx context.Context, w works.Work) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO works (`+workCols+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		w.ID, w.UBQN, w.DivisionID, w.WorkName, nullString(w.ClientName),
		w.ConsultancyCost.String(), string(w.Status), nullString(w.Subcategory),
		nullString(w.OrderNo), nullTime(w.OrderDate), nullString(w.InvoiceNo),
		fmtTime(w.CreatedAt), fmtTime(w.UpdatedAt))
	return err
}

func (s *Store) UpdateWork(ctx context.Context, w works.Work) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE works SET ubqn = ?, division_id = ?, work_name = ?, client_name = ?,
			consultancy_cost = ?, status = ?, subcategory = ?, order_no = ?,
			order_date = ?, invoice_no = ?, updated_at = ?
		WHERE id = ?`,
		w.UBQN, w.DivisionID, w.WorkName, nullString(w.ClientName),
		w.ConsultancyCost.String(), string(w.Status), nullString(w.Subcategory),
		nullString(w.OrderNo), nullTime(w.OrderDate), nullString(w.InvoiceNo),
		fmtTime(w.UpdatedAt), w.ID)
	if err != nil {
		return err
	}
	return requireRow(res, works.ErrWorkNotFound)
}

func (s *Store) DeleteWork(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM works WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireRow(res, works.ErrWorkNotFound)
}

func scanWork(rows *sql.Rows) (works.Work, error) {
	var (
		w                             works.Work
		clientName, subcategory       sql.NullString
		orderNo, orderDate, invoiceNo sql.NullString
		cost, createdAt, updatedAt    string
	)
	err := rows.Scan(&w.ID, &w.UBQN, &w.DivisionID, &w.WorkName, &clientName,
		&cost, (*string)(&w.Status), &subcategory, &orderNo, &orderDate,
		&invoiceNo, &createdAt, &updatedAt)
	if err != nil {
		return w, err
	}
	w.ClientName = clientName.String
	w.ConsultancyCost = money.Parse(cost)
	w.Subcategory = subcategory.String
	w.OrderNo = orderNo.String
	w.OrderDate = parseNullTime(orderDate)
	w.InvoiceNo = invoiceNo.String
	w.CreatedAt = parseTime(createdAt)
	w.UpdatedAt = parseTime(updatedAt)
	return w, nil
}

func (s *Store) ListQuotations(ctx context.Context) ([]works.Quotation, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ubqn, section, quotation_date, client_name, subject,
			consultancy_cost, division_id, version_no, created_at
		FROM quotations ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []works.Quotation
	for rows.Next() {
		var (
			q                              works.Quotation
			section, clientName, subject   sql.NullString
			divisionID                     sql.NullString
			cost, quotationDate, createdAt string
		)
		err := rows.Scan(&q.ID, &q.UBQN, &section, &quotationDate, &clientName,
			&subject, &cost, &divisionID, &q.VersionNo, &createdAt)
		if err != nil {
			return nil, err
		}
		q.Section = section.String
		q.QuotationDate = parseTime(quotationDate)
		q.ClientName = clientName.String
		q.Subject = subject.String
		q.ConsultancyCost = money.Parse(cost)
		q.DivisionID = divisionID.String
		q.CreatedAt = parseTime(createdAt)
		out = append(out, q)
	}
	return out, rows.Err()
}

func (s *Store) InsertQuotation(ctx context.Context, q works.Quotation) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO quotations (id, ubqn, section, quotation_date, client_name,
			subject, consultancy_cost, division_id, version_no, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		q.ID, q.UBQN, nullString(q.Section), fmtTime(q.QuotationDate),
		nullString(q.ClientName), nullString(q.Subject), q.ConsultancyCost.String(),
		nullString(q.DivisionID), q.VersionNo, fmtTime(q.CreatedAt))
	return err
}

func (s *Store) CountQuotations(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM quotations`).Scan(&n)
	return n, err
}

// =============================================================================
// EMPLOYEES, HIERARCHY (org.Store)
// =============================================================================

var _ org.Store = (*Store)(nil)

func (s *Store) ListEmployees(ctx context.Context) ([]org.Employee, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, email, role, division_id, phone, active, created_at, updated_at
		FROM employees ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []org.Employee
	for rows.Next() {
		var (
			e                    org.Employee
			divisionID, phone    sql.NullString
			active               int
			createdAt, updatedAt string
		)
		err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role, &divisionID, &phone,
			&active, &createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		e.DivisionID = divisionID.String
		e.Phone = phone.String
		e.Active = active != 0
		e.CreatedAt = parseTime(createdAt)
		e.UpdatedAt = parseTime(updatedAt)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) InsertEmployee(ctx context.Context, e org.Employee) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, role, division_id, phone, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.Name, e.Email, e.Role, nullString(e.DivisionID),
		nullString(e.Phone), boolInt(e.Active), fmtTime(e.CreatedAt), fmtTime(e.UpdatedAt))
	return err
}

func (s *Store) UpdateEmployee(ctx context.Context, e org.Employee) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE employees SET name = ?, email = ?, role = ?, division_id = ?,
			phone = ?, active = ?, updated_at = ?
		WHERE id = ?`,
		e.Name, e.Email, e.Role, nullString(e.DivisionID), nullString(e.Phone),
		boolInt(e.Active), fmtTime(e.UpdatedAt), e.ID)
	if err != nil {
		return err
	}
	return requireRow(res, org.ErrEmployeeNotFound)
}

func (s *Store) ListPositions(ctx context.Context) ([]org.Position, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, position_name, position_order, employee_id, created_at, updated_at
		FROM org_hierarchy ORDER BY position_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []org.Position
	for rows.Next() {
		var (
			p                    org.Position
			employeeID           sql.NullString
			createdAt, updatedAt string
		)
		err := rows.Scan(&p.ID, &p.PositionName, &p.PositionOrder, &employeeID,
			&createdAt, &updatedAt)
		if err != nil {
			return nil, err
		}
		p.EmployeeID = employeeID.String
		p.CreatedAt = parseTime(createdAt)
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *Store) UpsertPosition(ctx context.Context, p org.Position) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO org_hierarchy (id, position_name, position_order, employee_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			position_name = excluded.position_name,
			position_order = excluded.position_order,
			employee_id = excluded.employee_id,
			updated_at = excluded.updated_at`,
		p.ID, p.PositionName, p.PositionOrder, nullString(p.EmployeeID),
		fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt))
	return err
}

// =============================================================================
// USERS (auth.UserStore)
// =============================================================================

var _ auth.UserStore = (*Store)(nil)

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*auth.User, string, error) {
	var (
		u    auth.User
		name sql.NullString
		hash string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT id, email, name, role, password_hash FROM users WHERE email = ?`, email).
		Scan(&u.ID, &u.Email, &name, (*string)(&u.Role), &hash)
	if err == sql.ErrNoRows {
		return nil, "", auth.ErrUserNotFound
	}
	if err != nil {
		return nil, "", err
	}
	u.Name = name.String
	return &u, hash, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]auth.User, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, email, name, role FROM users ORDER BY email`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []auth.User
	for rows.Next() {
		var (
			u    auth.User
			name sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Email, &name, (*string)(&u.Role)); err != nil {
			return nil, err
		}
		u.Name = name.String
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) InsertUser(ctx context.Context, u auth.User, passwordHash string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO users (id, email, name, role, password_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, nullString(u.Name), string(u.Role), passwordHash,
		fmtTime(time.Now()))
	return err
}

func (s *Store) UpdateUserRole(ctx context.Context, userID string, role auth.Role) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE users SET role = ? WHERE id = ?`, string(role), userID)
	if err != nil {
		return err
	}
	return requireRow(res, auth.ErrUserNotFound)
}

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: fmtTime(*t), Valid: true}
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseNullTime(s sql.NullString) *time.Time {
	if !s.Valid {
		return nil
	}
	t := parseTime(s.String)
	return &t
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func requireRow(res sql.Result, missing error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return missing
	}
	return nil
}
