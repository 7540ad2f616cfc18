package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rcliao/puffin/internal/model"
	"github.com/rcliao/puffin/internal/store"
)

type validator interface {
	Validate() error
}

// resource wires one record collection to the generic CRUD handlers.
// R is the record, C its create input and U its partial update.
type resource[R any, C validator, U validator] struct {
	kind   model.Kind
	create func(ctx context.Context, c C) (*R, error)
	get    func(ctx context.Context, id string) (*R, error)
	update func(ctx context.Context, id string, u U) (*R, error)
	list   func(ctx context.Context, p store.ListParams) ([]R, error)
}

func (s *Server) diaperResource() resource[model.DiaperChange, model.DiaperCreate, model.DiaperUpdate] {
	return resource[model.DiaperChange, model.DiaperCreate, model.DiaperUpdate]{
		kind:   model.KindDiaper,
		create: s.store.CreateDiaper,
		get:    s.store.GetDiaper,
		update: s.store.UpdateDiaper,
		list:   s.store.ListDiapers,
	}
}

func (s *Server) feedingResource() resource[model.Feeding, model.FeedingCreate, model.FeedingUpdate] {
	return resource[model.Feeding, model.FeedingCreate, model.FeedingUpdate]{
		kind:   model.KindFeeding,
		create: s.store.CreateFeeding,
		get:    s.store.GetFeeding,
		update: s.store.UpdateFeeding,
		list:   s.store.ListFeedings,
	}
}

func (s *Server) medicationResource() resource[model.Medication, model.MedicationCreate, model.MedicationUpdate] {
	return resource[model.Medication, model.MedicationCreate, model.MedicationUpdate]{
		kind:   model.KindMedication,
		create: s.store.CreateMedication,
		get:    s.store.GetMedication,
		update: s.store.UpdateMedication,
		list:   s.store.ListMedications,
	}
}

func (s *Server) temperatureResource() resource[model.TemperatureReading, model.TemperatureCreate, model.TemperatureUpdate] {
	return resource[model.TemperatureReading, model.TemperatureCreate, model.TemperatureUpdate]{
		kind:   model.KindTemperature,
		create: s.store.CreateTemperature,
		get:    s.store.GetTemperature,
		update: s.store.UpdateTemperature,
		list:   s.store.ListTemperatures,
	}
}

func (rs resource[R, C, U]) routes(s *Server) http.Handler {
	r := chi.NewRouter()
	r.Post("/", rs.handleCreate(s))
	r.Get("/", rs.handleList(s))
	r.Get("/stats", rs.handleStats(s))
	r.Get("/{id}", rs.handleGet(s))
	r.Put("/{id}", rs.handleUpdate(s))
	r.Patch("/{id}", rs.handleUpdate(s))
	r.Delete("/{id}", rs.handleDelete(s))
	return r
}

func (rs resource[R, C, U]) handleCreate(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in C
		if err := decodeBody(r, &in); err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		if err := in.Validate(); err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		rec, err := rs.create(r.Context(), in)
		if err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		writeJSON(w, http.StatusCreated, rec)
	}
}

func (rs resource[R, C, U]) handleList(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := s.listParams(r)
		if err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		recs, err := rs.list(r.Context(), p)
		if err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		if recs == nil {
			recs = []R{}
		}
		writeJSON(w, http.StatusOK, recs)
	}
}

func (rs resource[R, C, U]) handleStats(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st, err := s.dash.Stats(r.Context(), rs.kind)
		if err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		writeJSON(w, http.StatusOK, st)
	}
}

func (rs resource[R, C, U]) handleGet(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, err := rs.get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (rs resource[R, C, U]) handleUpdate(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in U
		if err := decodeBody(r, &in); err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		if err := in.Validate(); err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		rec, err := rs.update(r.Context(), chi.URLParam(r, "id"), in)
		if err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	}
}

func (rs resource[R, C, U]) handleDelete(s *Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.store.Delete(r.Context(), rs.kind, chi.URLParam(r, "id")); err != nil {
			s.fail(w, r, rs.kind, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
