package entity

// CatalogItem representa una herramienta del catálogo de inventario.
// BaselineStock es la cantidad con la que se dio de alta la fila (inmutable,
// solo lo usa la estrategia de suma del log); CachedBalance es el balance
// materializado que se actualiza en cada movimiento confirmado.
type CatalogItem struct {
	Code              string
	Description       string
	Status            string // disponible, prestada, mantenimiento...
	Location          string // estante o ubicación física
	BaselineStock     int
	CachedBalance     int
	PhysicalCount     *int   // recuento físico, opcional
	PhysicalCountDate string // fecha del último recuento, opcional
}
