package sheets

import (
	"context"
	"fmt"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	sheetsvc "google.golang.org/api/sheets/v4"

	"github.com/jhoicas/Almacen-api/internal/infrastructure/tabular"
)

var _ tabular.Store = (*Client)(nil)

// Config credenciales y hoja de cálculo a usar.
// CredentialsJSON tiene prioridad sobre CredentialsFile; ambos vacíos usa
// Application Default Credentials.
type Config struct {
	CredentialsFile string
	CredentialsJSON string
	SpreadsheetID   string
}

// Client implementa el Store tabular sobre una hoja de cálculo de Google Sheets.
// Cada tabla es una pestaña (worksheet) identificada por nombre.
type Client struct {
	svc           *sheetsvc.Service
	spreadsheetID string
}

// NewClient autentica con el service account y abre el servicio de Sheets.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("falta el ID de la hoja de cálculo")
	}

	opts := []option.ClientOption{option.WithScopes(sheetsvc.SpreadsheetsScope)}
	switch {
	case cfg.CredentialsJSON != "":
		creds, err := google.CredentialsFromJSON(ctx, []byte(cfg.CredentialsJSON), sheetsvc.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("credenciales del service account: %w", err)
		}
		opts = append(opts, option.WithCredentials(creds))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	svc, err := sheetsvc.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("abrir servicio de Sheets: %w", err)
	}
	return &Client{svc: svc, spreadsheetID: cfg.SpreadsheetID}, nil
}

// ReadAll lee todas las filas de la pestaña.
func (c *Client) ReadAll(table string) ([][]string, error) {
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, table).
		Context(context.Background()).Do()
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", table, err)
	}
	rows := make([][]string, len(resp.Values))
	for i, raw := range resp.Values {
		row := make([]string, len(raw))
		for j, cell := range raw {
			row[j] = fmt.Sprint(cell)
		}
		rows[i] = row
	}
	return rows, nil
}

// FindRows busca coincidencias exactas leyendo solo la columna indicada.
func (c *Client) FindRows(table string, column int, value string) ([]int, error) {
	letter := columnLetter(column)
	rng := fmt.Sprintf("%s!%s:%s", table, letter, letter)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		Context(context.Background()).Do()
	if err != nil {
		return nil, fmt.Errorf("buscar en %s: %w", table, err)
	}
	var positions []int
	for i, raw := range resp.Values {
		if len(raw) > 0 && fmt.Sprint(raw[0]) == value {
			positions = append(positions, i+1)
		}
	}
	return positions, nil
}

// GetCell lee una sola celda.
func (c *Client) GetCell(table string, row, column int) (string, error) {
	rng := fmt.Sprintf("%s!%s%d", table, columnLetter(column), row)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).
		Context(context.Background()).Do()
	if err != nil {
		return "", fmt.Errorf("leer celda %s: %w", rng, err)
	}
	if len(resp.Values) == 0 || len(resp.Values[0]) == 0 {
		return "", nil
	}
	return fmt.Sprint(resp.Values[0][0]), nil
}

// SetCell escribe una sola celda (valor crudo, sin interpretación de fórmulas).
func (c *Client) SetCell(table string, row, column int, value string) error {
	rng := fmt.Sprintf("%s!%s%d", table, columnLetter(column), row)
	body := &sheetsvc.ValueRange{Values: [][]interface{}{{value}}}
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, body).
		ValueInputOption("RAW").
		Context(context.Background()).Do()
	if err != nil {
		return fmt.Errorf("escribir celda %s: %w", rng, err)
	}
	return nil
}

// AppendRow agrega una fila al final de la pestaña.
func (c *Client) AppendRow(table string, values []string) error {
	raw := make([]interface{}, len(values))
	for i, v := range values {
		raw[i] = v
	}
	body := &sheetsvc.ValueRange{Values: [][]interface{}{raw}}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, table, body).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(context.Background()).Do()
	if err != nil {
		return fmt.Errorf("agregar fila a %s: %w", table, err)
	}
	return nil
}

// columnLetter convierte un índice 1-based a la letra de columna A1 (1→A, 27→AA).
func columnLetter(column int) string {
	letters := ""
	for column > 0 {
		column--
		letters = string(rune('A'+column%26)) + letters
		column /= 26
	}
	return letters
}
