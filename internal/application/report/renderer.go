package report

import (
	"errors"
	"time"

	"github.com/dvalencia/bookstore-api/internal/domain/entity"
	"github.com/dvalencia/bookstore-api/internal/domain/repository"
)

// ErrNoRenderer ninguna fábrica de la lista está disponible. Con la fábrica
// fallback registrada (siempre disponible) no debería ocurrir en producción.
var ErrNoRenderer = errors.New("report: ningún renderer disponible")

// RenderInput todo lo que un renderer puede necesitar. El renderer rico
// consume Report (las cinco hojas compuestas); el fallback ignora Report y
// recalcula su propio resumen liviano a partir de Records.
type RenderInput struct {
	Seller      *entity.Seller
	Report      *Report
	Snapshot    *Snapshot
	Records     []repository.InventoryRecord
	GeneratedAt time.Time
}

// Renderer estrategia de serialización del reporte. Una vez elegido, el
// renderer es dueño del content type, del nombre de archivo y del cuerpo
// completo de la respuesta.
type Renderer interface {
	ContentType() string
	Filename(ts time.Time) string
	Render(in *RenderInput) ([]byte, error)
}

// Factory fábrica de renderers con sondeo de disponibilidad. Available se
// consulta exactamente una vez por request, antes de escribir bytes; la
// decisión no cambia a mitad de la respuesta.
type Factory interface {
	Name() string
	Available() bool
	New() Renderer
}

// Detect recorre las fábricas en orden y devuelve la primera disponible.
func Detect(factories []Factory) (string, Renderer, error) {
	for _, f := range factories {
		if f.Available() {
			return f.Name(), f.New(), nil
		}
	}
	return "", nil, ErrNoRenderer
}
