package inventory

import "sync"

// codeLocks serializa los commits de movimientos por código (single-writer por
// herramienta). Cierra la carrera de lost-update entre dos SALIDA simultáneas del
// mismo proceso; la variante postgres además bloquea la fila con FOR UPDATE.
type codeLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newCodeLocks() *codeLocks {
	return &codeLocks{locks: make(map[string]*sync.Mutex)}
}

// lock toma el mutex del código y devuelve la función para soltarlo.
func (l *codeLocks) lock(code string) func() {
	l.mu.Lock()
	m, ok := l.locks[code]
	if !ok {
		m = &sync.Mutex{}
		l.locks[code] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
