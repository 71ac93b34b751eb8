package inventory

import (
	"fmt"
	"time"
)

// Clock abstrae la hora actual para poder fijarla en tests.
type Clock interface {
	Now() time.Time
}

// BusinessClock devuelve la hora en la zona horaria del negocio como offset fijo
// respecto a UTC (Colombia es UTC-5 sin horario de verano). El offset es fijo y
// configurable: no depende del locale del host ni de reglas DST.
type BusinessClock struct {
	loc *time.Location
}

// NewBusinessClock construye el reloj con el offset en horas respecto a UTC
// (ej. -5 para Colombia).
func NewBusinessClock(offsetHours int) *BusinessClock {
	name := fmt.Sprintf("UTC%+d", offsetHours)
	return &BusinessClock{loc: time.FixedZone(name, offsetHours*3600)}
}

// Now devuelve la hora actual en la zona del negocio.
func (c *BusinessClock) Now() time.Time {
	return time.Now().In(c.loc)
}
