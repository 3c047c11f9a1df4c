// Package importer parses bank statements into drafts.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pocketledger/backend/internal/currency"
	"github.com/pocketledger/backend/internal/ledger"
	"github.com/shopspring/decimal"
)

// Columns of the statement format. This is the CSV format that YNAB
// imports and that many banks export.
const (
	Date = iota
	Payee
	Memo
	Outflow
	Inflow
)

var dateFormats = []string{"01/02/2006", time.DateOnly}

// Parse parses a statement CSV into drafts for the account. The first line
// is a header and is skipped. Drafts have no category, match rules or the
// caller need to set one.
func Parse(f io.Reader, accountID uuid.UUID) ([]ledger.Draft, error) {
	reader := csv.NewReader(f)

	// We can reuse the array in the background to improve performance
	reader.ReuseRecord = true
	reader.FieldsPerRecord = 5

	drafts := []ledger.Draft{}

	// Skip the first line
	_, err := reader.Read()
	if err == io.EOF {
		return drafts, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not read header of the CSV: %w", err)
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ParseError carries the line already
			return nil, fmt.Errorf("could not read line in CSV: %w", err)
		}

		date, err := parseDate(record[Date])
		if err != nil {
			return csvReadError(reader, err)
		}

		d := ledger.Draft{
			AccountID: accountID,
			PayeeName: strings.TrimSpace(record[Payee]),
			Date:      date,
			Memo:      strings.TrimSpace(record[Memo]),
			Cleared:   true,
		}

		outflow, inflow := strings.TrimSpace(record[Outflow]), strings.TrimSpace(record[Inflow])
		switch {
		case outflow != "" && inflow != "":
			return csvReadError(reader, errors.New("both outflow and inflow are set for the transaction"))
		case outflow == "" && inflow == "":
			return csvReadError(reader, errors.New("no amount is set for the transaction"))
		case outflow != "":
			d.Outflow, err = cents(outflow)
			if err != nil {
				return csvReadError(reader, fmt.Errorf("outflow could not be parsed to a decimal: %w", err))
			}
		default:
			d.Inflow, err = cents(inflow)
			if err != nil {
				return csvReadError(reader, fmt.Errorf("inflow could not be parsed to a decimal: %w", err))
			}
		}

		if d.Inflow == 0 && d.Outflow == 0 {
			return csvReadError(reader, errors.New("the amount for a transaction must not be 0"))
		}

		drafts = append(drafts, d)
	}

	return drafts, nil
}

func parseDate(s string) (time.Time, error) {
	for _, format := range dateFormats {
		date, err := time.Parse(format, strings.TrimSpace(s))
		if err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("could not parse date '%s'", s)
}

// cents parses an amount and returns its absolute value in cents.
func cents(s string) (int64, error) {
	amount, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, err
	}

	return currency.ToCents(amount.Abs()), nil
}

// csvReadError returns an error including the line of the input the
// error occurred in.
func csvReadError(r *csv.Reader, err error) ([]ledger.Draft, error) {
	// always use the first field, we are only interested in the line
	line, _ := r.FieldPos(0)

	return nil, fmt.Errorf("error in line %d of the CSV: %w", line, err)
}
