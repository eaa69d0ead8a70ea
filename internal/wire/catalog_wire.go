package wire

import (
	"table-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	r.Get("/time-slots", catalogHandler.ListTimeSlots)

	r.Route("/tables", func(r chi.Router) {
		r.Get("/", catalogHandler.ListTables)                       // GET /api/tables?capacity=4
		r.Get("/{id}", catalogHandler.GetTable)                     // GET /api/tables/{id}
		r.Get("/{id}/free-slots", catalogHandler.FreeSlots)         // GET /api/tables/{id}/free-slots?date=
		r.Get("/{id}/slots/{slotId}/free", catalogHandler.SlotFree) // GET /api/tables/{id}/slots/{slotId}/free?date=
	})
}
