package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Saanvi26/ATS-Scorer/internal/llm"
	"github.com/Saanvi26/ATS-Scorer/internal/pipeline"
	"github.com/Saanvi26/ATS-Scorer/internal/resume"
	"github.com/Saanvi26/ATS-Scorer/internal/schemas"
)

const maxJSONBody = 1 << 20

// scoreOptionsFromMultipart reads the resume upload and companion fields.
func (s *Server) scoreOptionsFromMultipart(r *http.Request) (pipeline.ProcessOptions, error) {
	if err := r.ParseMultipartForm(resume.MaxFileSize + (1 << 20)); err != nil {
		return pipeline.ProcessOptions{}, &resume.FileError{
			Name: "resume", Message: fmt.Sprintf("invalid multipart form: %v", err),
		}
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return pipeline.ProcessOptions{}, &resume.FileError{
			Name: "resume", Message: "missing resume file field",
		}
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, resume.MaxFileSize+1))
	if err != nil {
		return pipeline.ProcessOptions{}, &resume.FileError{
			Name: header.Filename, Message: fmt.Sprintf("reading upload: %v", err),
		}
	}

	return pipeline.ProcessOptions{
		FileName:       header.Filename,
		FileData:       data,
		JobDescription: r.FormValue("jobDescription"),
		JobURL:         r.FormValue("jobUrl"),
		Model:          r.FormValue("model"),
	}, nil
}

// handleScore scores an uploaded PDF resume against a job description.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	opts, err := s.scoreOptionsFromMultipart(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	result, err := s.processor.ProcessResume(r.Context(), opts)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

type scoreTextRequest struct {
	ResumeText     string `json:"resumeText"`
	JobDescription string `json:"jobDescription"`
	JobURL         string `json:"jobUrl"`
	Model          string `json:"model"`
}

// handleScoreText scores already extracted resume text sent as JSON. The
// body is checked against the embedded request schema before decoding.
func (s *Server) handleScoreText(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBody))
	if err != nil {
		s.errorResponse(w, &schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "(root)", Message: "unreadable request body"},
		}})
		return
	}
	if err := schemas.ValidateScoreRequest(body); err != nil {
		s.errorResponse(w, err)
		return
	}

	var req scoreTextRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.errorResponse(w, &schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "(root)", Message: "invalid JSON"},
		}})
		return
	}

	result, err := s.processor.ProcessResume(r.Context(), pipeline.ProcessOptions{
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
		Model:          req.Model,
	})
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleScoreStream scores an uploaded resume while streaming progress
// events over SSE, ending with a result or error event.
func (s *Server) handleScoreStream(w http.ResponseWriter, r *http.Request) {
	opts, err := s.scoreOptionsFromMultipart(r)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	opts.OnProgress = func(event pipeline.ProgressEvent) {
		sse.WriteEvent("progress", event) //nolint:errcheck
	}
	result, err := s.processor.ProcessResume(r.Context(), opts)
	if err != nil {
		sse.WriteError(ErrorCode(err), err.Error())
		return
	}
	sse.WriteEvent("result", result) //nolint:errcheck
}

// handleModels lists the selectable models.
func (s *Server) handleModels(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"models":  llm.AllowedModels(),
		"default": llm.DefaultModel,
	})
}

// handleGetCredential reports whether a credential is stored, never its value.
func (s *Server) handleGetCredential(w http.ResponseWriter, _ *http.Request) {
	_, ok, err := s.settings.Credential()
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]bool{"configured": ok})
}

type credentialRequest struct {
	Credential string `json:"credential"`
}

func (s *Server) handlePutCredential(w http.ResponseWriter, r *http.Request) {
	var req credentialRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		s.errorResponse(w, &schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "(root)", Message: "invalid JSON"},
		}})
		return
	}
	if err := s.settings.StoreCredential(req.Credential); err != nil {
		s.errorResponse(w, &schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "credential", Message: err.Error()},
		}})
		return
	}
	s.processor.InvalidateClient()
	s.jsonResponse(w, http.StatusOK, map[string]bool{"configured": true})
}

func (s *Server) handleDeleteCredential(w http.ResponseWriter, _ *http.Request) {
	if err := s.settings.RemoveCredential(); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.processor.InvalidateClient()
	s.jsonResponse(w, http.StatusOK, map[string]bool{"configured": false})
}

func (s *Server) handleGetModel(w http.ResponseWriter, _ *http.Request) {
	model, err := s.settings.Model()
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"model": model})
}

type modelRequest struct {
	Model string `json:"model"`
}

func (s *Server) handlePutModel(w http.ResponseWriter, r *http.Request) {
	var req modelRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(&req); err != nil {
		s.errorResponse(w, &schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "(root)", Message: "invalid JSON"},
		}})
		return
	}
	if err := s.settings.StoreModel(req.Model); err != nil {
		s.errorResponse(w, &schemas.ValidationError{Errors: []schemas.FieldError{
			{Field: "model", Message: err.Error()},
		}})
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"model": req.Model})
}

func (s *Server) handleDeleteModel(w http.ResponseWriter, _ *http.Request) {
	if err := s.settings.ClearModel(); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"model": llm.DefaultModel})
}
