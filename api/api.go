package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/a-bouts/polar-server/polar"
	"github.com/gorilla/mux"
)

type server struct {
	store *polar.Store
}

func InitServer(store *polar.Store) *mux.Router {

	router := mux.NewRouter().StrictSlash(true)

	s := server{store: store}

	apiV1 := router.PathPrefix("/polars/api/v1").Subrouter()

	apiV1.HandleFunc("/polars/-/healthz", s.healthz).Methods(http.MethodGet)
	apiV1.HandleFunc("/polars", s.list).Methods("GET")
	apiV1.HandleFunc("/polars", s.create).Methods("POST")
	apiV1.HandleFunc("/polars/{id}", s.get).Methods("GET")
	apiV1.HandleFunc("/polars/{id}", s.update).Methods("PUT")
	apiV1.HandleFunc("/polars/{id}", s.delete).Methods("DELETE")
	apiV1.HandleFunc("/polars/{id}/archive", s.archive).Methods("POST")
	apiV1.HandleFunc("/polars/{id}/restore", s.restore).Methods("POST")

	return router
}

func (s *server) healthz(w http.ResponseWriter, r *http.Request) {
	type health struct {
		Status string `json:"status"`
	}

	json.NewEncoder(w).Encode(health{Status: "Ok"})
}

func sortPolars(polars []polar.Polar, sortBy string, order string) {
	sort.SliceStable(polars, func(i, j int) bool {
		a, b := &polars[i], &polars[j]
		if order == "desc" {
			a, b = b, a
		}
		switch sortBy {
		case "_id":
			return a.PolarId < b.PolarId
		default:
			return a.Id < b.Id
		}
	})
}

func (s *server) list(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()

	if query.Get("polarId") != "" {
		s.findByPolarId(w, req)
		return
	}

	archived := false
	if query.Get("archived") != "" {
		var err error
		archived, err = strconv.ParseBool(query.Get("archived"))
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
	}

	polars, err := s.store.List(archived)
	if err != nil {
		log.WithError(err).Error("Error listing polars")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if query.Get("sortBy") != "" || query.Get("order") != "" {
		sortPolars(polars, query.Get("sortBy"), query.Get("order"))
	}

	json.NewEncoder(w).Encode(polars)
}

func (s *server) findByPolarId(w http.ResponseWriter, req *http.Request) {
	polarId, err := strconv.ParseUint(req.URL.Query().Get("polarId"), 10, 8)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	p, err := s.store.FindByPolarId(uint8(polarId))
	if err != nil {
		log.WithError(err).Errorf("Error finding polar '%d'", polarId)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if p == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(p)
}

func (s *server) get(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	p, err := s.store.Get(id)
	if err != nil {
		log.WithError(err).Errorf("Error getting polar '%s'", id)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	if p == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	json.NewEncoder(w).Encode(p)
}

func (s *server) create(w http.ResponseWriter, req *http.Request) {
	var p polar.Polar
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	if p.Id == "" {
		// default the id to the last segment of the label
		segments := strings.Split(p.Label, "/")
		p.Id = segments[len(segments)-1]
	}

	err := s.store.Create(&p)
	var alreadyExists *polar.AlreadyExistsError
	switch {
	case err == nil:
		log.Infof("Polar '%s' created", p.Id)
		w.WriteHeader(http.StatusCreated)
	case errors.Is(err, polar.ErrIdMandatory):
		w.WriteHeader(http.StatusBadRequest)
	case errors.As(err, &alreadyExists):
		w.WriteHeader(http.StatusConflict)
	default:
		log.WithError(err).Errorf("Error creating polar '%s'", p.Id)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *server) update(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	var p polar.Polar
	if err := json.NewDecoder(req.Body).Decode(&p); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	err := s.store.Update(id, &p)
	var notFound *polar.NotFoundError
	switch {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.As(err, &notFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Error updating polar '%s'", id)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *server) delete(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	err := s.store.Delete(id)
	var notFound *polar.NotFoundError
	switch {
	case err == nil:
		log.Infof("Polar '%s' deleted", id)
		w.WriteHeader(http.StatusNoContent)
	case errors.As(err, &notFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Error deleting polar '%s'", id)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *server) archive(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	err := s.store.Archive(id)
	var notFound *polar.NotFoundError
	switch {
	case err == nil:
		log.Infof("Polar '%s' archived", id)
		w.WriteHeader(http.StatusOK)
	case errors.As(err, &notFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		log.WithError(err).Errorf("Error archiving polar '%s'", id)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (s *server) restore(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]

	err := s.store.Restore(id)
	var notFound *polar.NotFoundError
	var alreadyExists *polar.AlreadyExistsError
	switch {
	case err == nil:
		log.Infof("Polar '%s' restored", id)
		w.WriteHeader(http.StatusCreated)
	case errors.As(err, &notFound):
		w.WriteHeader(http.StatusNotFound)
	case errors.As(err, &alreadyExists):
		w.WriteHeader(http.StatusConflict)
	default:
		log.WithError(err).Errorf("Error restoring polar '%s'", id)
		w.WriteHeader(http.StatusInternalServerError)
	}
}
