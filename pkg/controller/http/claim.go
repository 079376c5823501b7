package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/lexdesk/claimsync/pkg/domain/interfaces"
	"github.com/lexdesk/claimsync/pkg/domain/model"
	"github.com/lexdesk/claimsync/pkg/domain/model/api"
	"github.com/m-mizutani/goerr/v2"
)

func (s *Server) listClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := s.backend.ListClaims(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeList(w, r, claims)
}

// updateClaim answers a status change with 204 and a details edit with the
// stored claim
func (s *Server) updateClaim(w http.ResponseWriter, r *http.Request) {
	var req api.UpdateClaimRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	claimID := chi.URLParam(r, "id")

	switch {
	case req.Status != "" && req.Details != nil:
		handleError(w, r, goerr.Wrap(interfaces.ErrInvalidInput, "status and details cannot change together"))
	case req.Status != "":
		if err := s.backend.UpdateClaimStatus(r.Context(), claimID, req.Status); err != nil {
			handleError(w, r, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case req.Details != nil:
		claim, err := s.backend.UpdateClaim(r.Context(), claimID, *req.Details)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeJSON(w, r, http.StatusOK, claim)
	default:
		handleError(w, r, goerr.Wrap(interfaces.ErrInvalidInput, "nothing to update"))
	}
}

func (s *Server) bulkUpdateClaimStatus(w http.ResponseWriter, r *http.Request) {
	var req api.BulkStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	n, err := s.backend.BulkUpdateClaimStatus(r.Context(), req.ClaimIDs, req.Status)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, api.BulkStatusResponse{UpdatedCount: n})
}

// createClaim answers 201 with the claim, or 202 when a category 3 lender got
// a confirmation email instead
func (s *Server) createClaim(w http.ResponseWriter, r *http.Request) {
	var claim model.Claim
	if !decodeJSON(w, r, &claim) {
		return
	}
	creation, err := s.backend.CreateClaim(r.Context(), chi.URLParam(r, "id"), &claim)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := api.CreateClaimResponse{
		Claim:     creation.Claim,
		Category3: creation.Category3,
		Message:   creation.Message,
	}
	if creation.Category3 {
		writeJSON(w, r, http.StatusAccepted, resp)
		return
	}
	writeJSON(w, r, http.StatusCreated, resp)
}

func (s *Server) deleteClaim(w http.ResponseWriter, r *http.Request) {
	if err := s.backend.DeleteClaim(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
