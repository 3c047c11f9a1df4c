package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	v1 "github.com/pocketledger/backend/internal/controllers/v1"
	"github.com/pocketledger/backend/internal/notify"
)

// ImportResult is the outcome of a statement import.
type ImportResult struct {
	Created    []v1.Transaction
	Duplicates int
	Errors     []string
}

// ImportStatement uploads a CSV statement to an account. Lines that fail
// validation are reported in the result, they do not fail the import.
func (c *Client) ImportStatement(ctx context.Context, accountID uuid.UUID, filename string, statement io.Reader) (ImportResult, error) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to create form file: %w", err)
	}

	_, err = io.Copy(part, statement)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to read statement: %w", err)
	}

	err = w.Close()
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to encode request: %w", err)
	}

	var r v1.DraftCreateResponse
	err = c.send(ctx, http.MethodPost, fmt.Sprintf("/v1/accounts/%s/import", accountID), nil, w.FormDataContentType(), &body, &r)

	// Line errors set a 4xx status, but the other lines have been imported
	if err != nil && len(r.Data) == 0 {
		return ImportResult{}, err
	}

	var result ImportResult
	for _, d := range r.Data {
		switch {
		case d.Duplicate:
			result.Duplicates++
		case d.Error != nil:
			result.Errors = append(result.Errors, *d.Error)
		case d.Data != nil:
			result.Created = append(result.Created, *d.Data)
		}
	}

	if len(result.Created) > 0 {
		c.emit(ctx, append(transactionKeys(result.Created...), notify.PayeeList())...)
	}

	return result, nil
}
