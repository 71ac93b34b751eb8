package tabular

import (
	"fmt"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore implementación en memoria del Store tabular. Se usa en tests y
// como backend efímero de cmd/verify-store; conserva la misma convención
// 1-based y encabezado en la primera fila.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string][][]string
}

// NewMemoryStore crea un almacén vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: make(map[string][][]string)}
}

// Seed reemplaza el contenido completo de una tabla (encabezado incluido).
func (s *MemoryStore) Seed(table string, rows [][]string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := make([][]string, len(rows))
	for i, row := range rows {
		copied[i] = append([]string(nil), row...)
	}
	s.tables[table] = copied
}

func (s *MemoryStore) rows(table string) ([][]string, error) {
	rows, ok := s.tables[table]
	if !ok {
		return nil, fmt.Errorf("la tabla %q no existe", table)
	}
	return rows, nil
}

// ReadAll devuelve una copia de todas las filas.
func (s *MemoryStore) ReadAll(table string) ([][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.rows(table)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = append([]string(nil), row...)
	}
	return out, nil
}

// FindRows devuelve las posiciones 1-based cuyas celdas coinciden exactamente.
func (s *MemoryStore) FindRows(table string, column int, value string) ([]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.rows(table)
	if err != nil {
		return nil, err
	}
	var positions []int
	for i, row := range rows {
		if column >= 1 && column <= len(row) && row[column-1] == value {
			positions = append(positions, i+1)
		}
	}
	return positions, nil
}

// GetCell devuelve la celda; fuera de rango dentro de la fila devuelve "".
func (s *MemoryStore) GetCell(table string, row, column int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.rows(table)
	if err != nil {
		return "", err
	}
	if row < 1 || row > len(rows) {
		return "", fmt.Errorf("fila %d fuera de rango en %q", row, table)
	}
	r := rows[row-1]
	if column < 1 || column > len(r) {
		return "", nil
	}
	return r[column-1], nil
}

// SetCell escribe la celda, extendiendo la fila si hace falta.
func (s *MemoryStore) SetCell(table string, row, column int, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.rows(table)
	if err != nil {
		return err
	}
	if row < 1 || row > len(rows) {
		return fmt.Errorf("fila %d fuera de rango en %q", row, table)
	}
	if column < 1 {
		return fmt.Errorf("columna %d fuera de rango en %q", column, table)
	}
	r := rows[row-1]
	for len(r) < column {
		r = append(r, "")
	}
	r[column-1] = value
	rows[row-1] = r
	s.tables[table] = rows
	return nil
}

// AppendRow agrega la fila al final de la tabla.
func (s *MemoryStore) AppendRow(table string, values []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.rows(table)
	if err != nil {
		return err
	}
	s.tables[table] = append(rows, append([]string(nil), values...))
	return nil
}
