package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/hrtools/hrscan/internal/attrition"
	"github.com/hrtools/hrscan/internal/history"
	"github.com/hrtools/hrscan/internal/jobs"
	"github.com/hrtools/hrscan/internal/matching"
	"github.com/hrtools/hrscan/internal/resume"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// matchRequest mirrors the multipart form fields of the match endpoint.
type matchRequest struct {
	JobTitle        string `validate:"required"`
	CompanyName     string
	JobDescription  string
	Location        string
	ExperienceLevel string
	SkillsRequired  string
	Industry        string
	EmploymentMode  string
	ModelChoice     string
}

func (s *Server) handleParseResume(w http.ResponseWriter, r *http.Request) {
	name, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	vocab, err := s.jobs.Vocabulary(r.Context())
	if err != nil {
		s.logger.Error("loading skill vocabulary failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "loading skill vocabulary failed")
		return
	}

	profile, err := resume.Parse(name, data, vocab)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    profile,
	})
}

func (s *Server) handleMatchResume(w http.ResponseWriter, r *http.Request) {
	name, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}

	req := matchRequest{
		JobTitle:        r.FormValue("job_title"),
		CompanyName:     r.FormValue("company_name"),
		JobDescription:  r.FormValue("job_description"),
		Location:        r.FormValue("location"),
		ExperienceLevel: r.FormValue("experience_level"),
		SkillsRequired:  r.FormValue("skills_required"),
		Industry:        r.FormValue("industry"),
		EmploymentMode:  r.FormValue("employment_mode"),
		ModelChoice:     r.FormValue("model_choice"),
	}
	if err := s.validate.Struct(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, validationMessage(err))
		return
	}

	vocab, err := s.jobs.Vocabulary(r.Context())
	if err != nil {
		s.logger.Error("loading skill vocabulary failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "loading skill vocabulary failed")
		return
	}

	profile, err := resume.Parse(name, data, vocab)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	choice := matching.ParseModelChoice(req.ModelChoice)
	result := s.dispatcher.Match(r.Context(),
		&matching.ResumeInput{
			RawText:         profile.RawText,
			Skills:          profile.Skills,
			YearsExperience: profile.YearsExperience,
		},
		&matching.JobInput{
			Title:           req.JobTitle,
			Company:         req.CompanyName,
			Description:     req.JobDescription,
			Location:        req.Location,
			ExperienceLevel: req.ExperienceLevel,
			SkillsRequired:  req.SkillsRequired,
			Industry:        req.Industry,
			EmploymentMode:  req.EmploymentMode,
		},
		choice,
	)

	s.record(r, &history.Record{
		Kind:    history.KindMatch,
		Subject: req.JobTitle,
		Model:   result.Model,
		Score:   float64(result.MatchScore),
	})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"result":      result,
		"resume_data": profile,
	})
}

func (s *Server) handleAttrition(w http.ResponseWriter, r *http.Request) {
	var rec attrition.Record
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid employee record: "+err.Error())
		return
	}

	result := s.attrition.Predict(r.Context(), &rec)

	s.record(r, &history.Record{
		Kind:    history.KindAttrition,
		Subject: rec.JobRole,
		Model:   result.Model,
		Score:   result.RiskScore,
		Level:   string(result.RiskLevel),
	})

	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	postings, err := s.jobs.List(r.Context())
	if err != nil {
		s.logger.Error("listing job postings failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "listing job postings failed")
		return
	}

	s.writeJSON(w, http.StatusOK, postings.Items)
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.jobID(w, r)
	if !ok {
		return
	}

	posting, err := s.jobs.Get(r.Context(), id)
	if errors.Is(err, jobs.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "job posting not found")
		return
	}
	if err != nil {
		s.logger.Error("getting job posting failed", zap.Int64("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "getting job posting failed")
		return
	}

	s.writeJSON(w, http.StatusOK, posting)
}

func (s *Server) handleAddJob(w http.ResponseWriter, r *http.Request) {
	posting, ok := s.decodePosting(w, r)
	if !ok {
		return
	}

	id, err := s.jobs.Add(r.Context(), posting)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.writeJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.jobID(w, r)
	if !ok {
		return
	}

	posting, ok := s.decodePosting(w, r)
	if !ok {
		return
	}

	err := s.jobs.Update(r.Context(), id, posting)
	if errors.Is(err, jobs.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "job posting not found")
		return
	}
	if err != nil {
		s.logger.Error("updating job posting failed", zap.Int64("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "updating job posting failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"updated": true})
}

func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	id, ok := s.jobID(w, r)
	if !ok {
		return
	}

	err := s.jobs.Delete(r.Context(), id)
	if errors.Is(err, jobs.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "job posting not found")
		return
	}
	if err != nil {
		s.logger.Error("deleting job posting failed", zap.Int64("id", id), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "deleting job posting failed")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	records, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("listing prediction history failed", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "listing prediction history failed")
		return
	}

	s.writeJSON(w, http.StatusOK, records)
}

// readUpload pulls the "file" part out of a multipart request.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "resume file is required")
		return "", nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "reading resume file failed")
		return "", nil, false
	}

	return header.Filename, data, true
}

func (s *Server) decodePosting(w http.ResponseWriter, r *http.Request) (*jobs.Posting, bool) {
	var posting jobs.Posting
	if err := json.NewDecoder(r.Body).Decode(&posting); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid job posting: "+err.Error())
		return nil, false
	}

	if err := s.validate.Var(posting.Title, "required"); err != nil {
		s.writeError(w, http.StatusBadRequest, "job_title is required")
		return nil, false
	}

	return &posting, true
}

func (s *Server) jobID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid job posting id")
		return 0, false
	}
	return id, true
}

func (s *Server) record(r *http.Request, rec *history.Record) {
	if s.history == nil {
		return
	}
	if err := s.history.Append(r.Context(), rec); err != nil {
		s.logger.Warn("recording prediction history failed", zap.Error(err))
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return "invalid request: " + verrs[0].Field() + " failed " + verrs[0].Tag() + " validation"
	}
	return "invalid request"
}
