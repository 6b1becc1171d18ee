package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/boostly/boostly-ledger/internal/application/command"
	"github.com/boostly/boostly-ledger/internal/application/query"
	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH
// ══════════════════════════════════════════════════════════════════════════════

type healthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks"`
	Timestamp time.Time         `json:"timestamp"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	checks := make(map[string]string)
	healthy := true

	if s.deps.Postgres != nil {
		if err := s.deps.Postgres.Ping(ctx); err != nil {
			checks["postgres"] = "down"
			healthy = false
		} else {
			checks["postgres"] = "up"
		}
	}

	if s.deps.Redis != nil {
		// Redis is a cache; it degrades reads but does not make the service
		// unhealthy.
		if err := s.deps.Redis.Ping(ctx); err != nil {
			checks["redis"] = "down"
		} else {
			checks["redis"] = "up"
		}
	}

	status := http.StatusOK
	body := healthResponse{Status: "ok", Checks: checks, Timestamp: time.Now().UTC()}
	if !healthy {
		status = http.StatusServiceUnavailable
		body.Status = "degraded"
	}

	s.writeJSON(w, status, body)
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENTS
// ══════════════════════════════════════════════════════════════════════════════

type createStudentRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var req createStudentRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CreateStudent.Handle(r.Context(), command.CreateStudentCommand{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, query.ToStudentDTO(result.Student))
}

func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetStudent.Handle(r.Context(), query.GetStudentQuery{
		StudentID: chi.URLParam(r, "id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result.Student)
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListStudents.Handle(r.Context(), query.ListStudentsQuery{})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"students": result.Students,
		"total":    result.Total,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// RECOGNITIONS & ENDORSEMENTS
// ══════════════════════════════════════════════════════════════════════════════

type createRecognitionRequest struct {
	SenderID   string `json:"sender_id"`
	ReceiverID string `json:"receiver_id"`
	Credits    int    `json:"credits"`
	Message    string `json:"message"`
}

func (s *Server) handleCreateRecognition(w http.ResponseWriter, r *http.Request) {
	var req createRecognitionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CreateRecognition.Handle(r.Context(), command.CreateRecognitionCommand{
		SenderID:   req.SenderID,
		ReceiverID: req.ReceiverID,
		Credits:    req.Credits,
		Message:    req.Message,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, query.ToRecognitionDTO(result.Recognition))
}

func (s *Server) handleGetRecognition(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetRecognition.Handle(r.Context(), query.GetRecognitionQuery{
		RecognitionID: chi.URLParam(r, "id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result.Recognition)
}

func (s *Server) handleListRecognitions(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListRecognitions.Handle(r.Context(), query.ListRecognitionsQuery{})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"recognitions": result.Recognitions,
		"total":        result.Total,
	})
}

type createEndorsementRequest struct {
	EndorserID string `json:"endorser_id"`
}

func (s *Server) handleCreateEndorsement(w http.ResponseWriter, r *http.Request) {
	var req createEndorsementRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CreateEndorsement.Handle(r.Context(), command.CreateEndorsementCommand{
		RecognitionID: chi.URLParam(r, "id"),
		EndorserID:    req.EndorserID,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, query.EndorsementDTO{
		ID:            result.Endorsement.ID,
		RecognitionID: result.Endorsement.RecognitionID,
		EndorserID:    result.Endorsement.EndorserID,
		CreatedAt:     result.Endorsement.CreatedAt,
	})
}

func (s *Server) handleGetEndorsement(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetEndorsement.Handle(r.Context(), query.GetEndorsementQuery{
		EndorsementID: chi.URLParam(r, "id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result.Endorsement)
}

// ══════════════════════════════════════════════════════════════════════════════
// REDEMPTIONS
// ══════════════════════════════════════════════════════════════════════════════

type createRedemptionRequest struct {
	StudentID string `json:"student_id"`
	Credits   int    `json:"credits"`
}

func (s *Server) handleCreateRedemption(w http.ResponseWriter, r *http.Request) {
	var req createRedemptionRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	result, err := s.deps.CreateRedemption.Handle(r.Context(), command.CreateRedemptionCommand{
		StudentID: req.StudentID,
		Credits:   req.Credits,
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusCreated, query.ToRedemptionDTO(result.Redemption))
}

func (s *Server) handleGetRedemption(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.GetRedemption.Handle(r.Context(), query.GetRedemptionQuery{
		RedemptionID: chi.URLParam(r, "id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result.Redemption)
}

func (s *Server) handleListStudentRedemptions(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListStudentRedemptions.Handle(r.Context(), query.ListStudentRedemptionsQuery{
		StudentID: chi.URLParam(r, "id"),
	})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"redemptions": result.Redemptions,
		"total":       result.Total,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// LEADERBOARD & RESET
// ══════════════════════════════════════════════════════════════════════════════

func (s *Server) handleGetLeaderboard(w http.ResponseWriter, r *http.Request) {
	// An absent limit falls back to the default; an explicit bad limit is the
	// caller's mistake and rejected by the query handler.
	limit := leaderboard.DefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "validation_error", "limit must be an integer")
			return
		}
		limit = parsed
	}

	result, err := s.deps.GetLeaderboard.Handle(r.Context(), query.GetLeaderboardQuery{Limit: limit})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleResetCredits(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ResetCredits.Handle(r.Context(), command.ResetCreditsCommand{})
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"students_reset": result.StudentsReset,
		"period":         result.Period,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// decodeBody decodes a JSON request body, writing a 400 on failure.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dest); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed_body", "request body must be valid JSON")
		return false
	}
	return true
}
