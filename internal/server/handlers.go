package server

import (
	"context"
	"net/http"

	"github.com/aTrapDeer/portfolio/internal/models"
	"github.com/aTrapDeer/portfolio/internal/schema"
)

const (
	kindContact   = schema.KindContactMessage
	kindSkill     = schema.KindSkill
	kindProject   = schema.KindProject
	kindMilestone = schema.KindMilestone
)

const contactReceived = "Your message has been received. We will get back to you soon."

func (s *Server) contentChanged(kind schema.Kind) {
	if kind == kindContact {
		return
	}
	s.revalidator.Notify(string(kind) + " changed")
}

func list[T any](s *Server, fetch func(context.Context) ([]T, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recs, err := fetch(r.Context())
		if err != nil {
			internalError(w, r, "list "+r.URL.Path, err)
			return
		}
		writeData(w, http.StatusOK, recs)
	})
}

func getOne[T any](s *Server, kind schema.Kind, get func(context.Context, uint) (T, bool, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, kind)
		if !ok {
			return
		}
		rec, found, err := get(r.Context(), id)
		if err != nil {
			internalError(w, r, "get "+string(kind), err)
			return
		}
		if !found {
			notFound(w, kind)
			return
		}
		writeData(w, http.StatusOK, rec)
	})
}

func create[In, Out any](s *Server, kind schema.Kind, save func(context.Context, In) (Out, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		in, ok := decodeBody[In](w, r, s.maxBody, kind, schema.Validate)
		if !ok {
			return
		}
		rec, err := save(r.Context(), in)
		if err != nil {
			internalError(w, r, "create "+string(kind), err)
			return
		}
		s.contentChanged(kind)
		writeData(w, http.StatusCreated, rec)
	})
}

func update[P, T any](s *Server, kind schema.Kind, apply func(context.Context, uint, P) (T, bool, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, kind)
		if !ok {
			return
		}
		patch, ok := decodeBody[P](w, r, s.maxBody, kind, schema.ValidatePatch)
		if !ok {
			return
		}
		rec, found, err := apply(r.Context(), id, patch)
		if err != nil {
			internalError(w, r, "update "+string(kind), err)
			return
		}
		if !found {
			notFound(w, kind)
			return
		}
		s.contentChanged(kind)
		writeData(w, http.StatusOK, rec)
	})
}

func remove(s *Server, kind schema.Kind, del func(context.Context, uint) error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, kind)
		if !ok {
			return
		}
		if err := del(r.Context(), id); err != nil {
			internalError(w, r, "delete "+string(kind), err)
			return
		}
		s.contentChanged(kind)
		writeJSON(w, http.StatusOK, envelope{Success: true})
	})
}

func (s *Server) handleCreateContactMessage(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeBody[models.NewContactMessage](w, r, s.maxBody, kindContact, schema.Validate)
	if !ok {
		return
	}
	msg, err := s.store.CreateContactMessage(r.Context(), in)
	if err != nil {
		internalError(w, r, "create contact message", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: msg, Message: contactReceived})
}

func (s *Server) handleMarkContactMessageRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, kindContact)
	if !ok {
		return
	}
	ctx := r.Context()
	if err := s.store.MarkContactMessageRead(ctx, id); err != nil {
		internalError(w, r, "mark contact message read", err)
		return
	}
	msg, found, err := s.store.GetContactMessage(ctx, id)
	if err != nil {
		internalError(w, r, "get contact message", err)
		return
	}
	if !found {
		notFound(w, kindContact)
		return
	}
	writeData(w, http.StatusOK, msg)
}
