package database

import (
	"database/sql"
	"log"
	"sync"

	"github.com/dukahq/dukarecon/cache"

	"github.com/dukahq/dukarecon/config"

	_ "github.com/lib/pq"
	"github.com/pkg/errors"
)

// Declare a package-level variable to hold the singleton instance.
// Ensure the instance is not accessible outside the package.
var instance *Datasource
var once sync.Once

type Datasource struct {
	Conn  *sql.DB
	Cache cache.Cache
}

func NewDataSource(configuration *config.Configuration) (IDataSource, error) {
	con, err := GetDBConnection(configuration)
	if err != nil {
		return nil, err
	}
	return con, nil
}

// GetDBConnection provides a global access point to the instance and initializes it if it's not already.
func GetDBConnection(configuration *config.Configuration) (*Datasource, error) {
	var err error
	once.Do(func() {
		con, errConn := ConnectDB(configuration.DataSource.Dns)
		if errConn != nil {
			err = errConn
			return
		}
		instance = &Datasource{Conn: con, Cache: nil} // or Cache: newCache if cache is used
	})
	if err != nil {
		return nil, err
	}
	return instance, nil
}

func ConnectDB(dns string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dns)
	if err != nil {
		return nil, errors.Wrap(err, "opening database connection")
	}
	err = db.Ping()
	if err != nil {
		log.Printf("database Connection error ❌: %v", err)
		return nil, errors.Wrap(err, "pinging database")
	}
	err = createLedgerEntryTable(db)
	if err != nil {
		return nil, err
	}
	err = createPaymentTable(db)
	if err != nil {
		return nil, err
	}
	err = createExpenseTable(db)
	if err != nil {
		return nil, err
	}
	return db, nil
}

// createLedgerEntryTable creates a PostgreSQL table for the LedgerEntry struct.
// The (tenant_id, reference_code) pair is the idempotency key for notification
// redelivery.
func createLedgerEntryTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ledger_entries (
			id SERIAL PRIMARY KEY,
			entry_id TEXT NOT NULL UNIQUE,
			tenant_id TEXT NOT NULL,
			submitter_id TEXT,
			reference_code TEXT NOT NULL,
			amount NUMERIC(20,2) NOT NULL,
			counterparty TEXT,
			channel TEXT NOT NULL,
			raw_text TEXT,
			source_label TEXT,
			status TEXT NOT NULL DEFAULT 'unmatched' CHECK (status IN ('unmatched', 'matched', 'dismissed')),
			received_at TIMESTAMP NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (tenant_id, reference_code)
		)
	`)
	log.Println(err)
	return err
}

// createPaymentTable creates a PostgreSQL table for the RecordedPayment struct
func createPaymentTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS payments (
			id SERIAL PRIMARY KEY,
			payment_id TEXT NOT NULL UNIQUE,
			tenant_id TEXT NOT NULL,
			attendant_id TEXT NOT NULL,
			attendant_name TEXT,
			amount NUMERIC(20,2) NOT NULL,
			payment_method TEXT NOT NULL CHECK (payment_method IN ('cash', 'mobile-money', 'bank')),
			reference_code TEXT,
			is_verified BOOLEAN NOT NULL DEFAULT FALSE,
			verified_at TIMESTAMP,
			created_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	log.Println(err)
	return err
}

// createExpenseTable creates a PostgreSQL table for the Expense struct
func createExpenseTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS expenses (
			id SERIAL PRIMARY KEY,
			expense_id TEXT NOT NULL UNIQUE,
			tenant_id TEXT NOT NULL,
			reference_code TEXT NOT NULL,
			amount NUMERIC(20,2) NOT NULL,
			description TEXT,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			UNIQUE (tenant_id, reference_code)
		)
	`)
	log.Println(err)
	return err
}
