package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/alfred0/internal/catalog"
	"github.com/playperu/alfred0/internal/tokens"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// Path and query parameter carriers. Request documents that also have a
// body embed one of these next to the body type.
type (
	PhasePath struct {
		ID string `path:"id"`
	}
	QuestionPath struct {
		ID         string `path:"id"`
		QuestionID string `path:"questionID"`
	}
	PresetPath struct {
		ID string `path:"id" description:"balanced, high-stakes, learning-focused or competitive"`
	}
	PhasesQuery struct {
		Active bool `query:"active"`
	}
	TierQuery struct {
		Tokens int `query:"tokens" required:"true"`
	}
	ExportQuery struct {
		Download bool `query:"download"`
	}
)

// Partial update bodies as clients see them. The domain types wrap each
// field in catalog.Field, which the schema reflector cannot describe.
type (
	phasePatch struct {
		Title       *string         `json:"title,omitempty"`
		Description *string         `json:"description,omitempty"`
		TimeLimit   *int            `json:"timeLimit,omitempty"`
		Content     json.RawMessage `json:"content,omitempty"`
		IsActive    *bool           `json:"isActive,omitempty"`
	}
	questionPatch struct {
		Text          *string  `json:"text,omitempty"`
		Options       []string `json:"options,omitempty"`
		CorrectAnswer *int     `json:"correctAnswer,omitempty"`
		Explanation   *string  `json:"explanation,omitempty"`
	}
	settingsPatch struct {
		GameName            *string  `json:"gameName,omitempty"`
		GameDescription     *string  `json:"gameDescription,omitempty"`
		ShowTokensToPlayers *bool    `json:"showTokensToPlayers,omitempty"`
		TotalPhases         *int     `json:"totalPhases,omitempty"`
		TeamNameRequired    *bool    `json:"teamNameRequired,omitempty"`
		AllowTeamNameChange *bool    `json:"allowTeamNameChange,omitempty"`
		MaxTeamNameLength   *int     `json:"maxTeamNameLength,omitempty"`
		GameLanguages       []string `json:"gameLanguages,omitempty"`
		DefaultLanguage     *string  `json:"defaultLanguage,omitempty"`
	}
)

type (
	updatePhaseDoc struct {
		PhasePath
		phasePatch
	}
	movePhaseDoc struct {
		PhasePath
		MovePhaseRequest
	}
	addQuestionDoc struct {
		PhasePath
		catalog.NewQuestion
	}
	updateQuestionDoc struct {
		QuestionPath
		questionPatch
	}
	answerDoc struct {
		Phase int `path:"phase" minimum:"3" maximum:"5"`
		AnswerRequest
	}
)

// operation describes one documented endpoint.
type operation struct {
	method, path    string
	summary, desc   string
	req             any
	resp            any
	status          int
	errors          []int
	respContentType string
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Alfred0 API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Configuration backend for the Alfred0 entrepreneurship game: phases, settings, token rules and import/export.")

	ops := []operation{
		{method: http.MethodGet, path: "/api/phases", summary: "List phases",
			desc: "All phases in play order. Pass active=true to list only active phases.",
			req:  PhasesQuery{}, resp: []catalog.Phase{}},
		{method: http.MethodGet, path: "/api/phases/active", summary: "List active phases",
			resp: []catalog.Phase{}},
		{method: http.MethodPost, path: "/api/phases", summary: "Add phase",
			desc: "Appends a phase at the end of the sequence.",
			req:  catalog.NewPhase{}, resp: catalog.Phase{}, status: http.StatusCreated,
			errors: []int{http.StatusBadRequest}},
		{method: http.MethodGet, path: "/api/phases/{id}", summary: "Get phase",
			req: PhasePath{}, resp: catalog.Phase{}, errors: []int{http.StatusNotFound}},
		{method: http.MethodPatch, path: "/api/phases/{id}", summary: "Update phase",
			desc: "Only fields present in the body are changed. Type, id and order are fixed.",
			req:  updatePhaseDoc{}, resp: catalog.Phase{},
			errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{method: http.MethodDelete, path: "/api/phases/{id}", summary: "Delete phase",
			desc: "Removes the phase and renumbers the rest.",
			req:  PhasePath{}, resp: StatusResponse{}, errors: []int{http.StatusNotFound}},
		{method: http.MethodPost, path: "/api/phases/{id}/move", summary: "Move phase",
			desc: "Swaps the phase with its neighbour. Returns the reordered phases.",
			req:  movePhaseDoc{}, resp: []catalog.Phase{},
			errors: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict}},
		{method: http.MethodPost, path: "/api/phases/{id}/questions", summary: "Add question",
			desc: "Only multiple-choice phases hold questions.",
			req:  addQuestionDoc{}, resp: catalog.Question{}, status: http.StatusCreated,
			errors: []int{http.StatusBadRequest, http.StatusNotFound, http.StatusConflict}},
		{method: http.MethodPatch, path: "/api/phases/{id}/questions/{questionID}", summary: "Update question",
			req: updateQuestionDoc{}, resp: catalog.Question{},
			errors: []int{http.StatusBadRequest, http.StatusNotFound}},
		{method: http.MethodDelete, path: "/api/phases/{id}/questions/{questionID}", summary: "Delete question",
			req: QuestionPath{}, resp: StatusResponse{}, errors: []int{http.StatusNotFound}},

		{method: http.MethodGet, path: "/api/settings", summary: "Get game settings",
			resp: catalog.Settings{}},
		{method: http.MethodPatch, path: "/api/settings", summary: "Update game settings",
			req: settingsPatch{}, resp: catalog.Settings{},
			errors: []int{http.StatusBadRequest}},
		{method: http.MethodPost, path: "/api/settings/team-name", summary: "Validate team name",
			desc: "Checks a team name against the current settings and returns it trimmed.",
			req:  TeamNameRequest{}, resp: TeamNameResponse{}, errors: []int{http.StatusBadRequest}},

		{method: http.MethodGet, path: "/api/tokens/config", summary: "Get token rules",
			resp: TokenConfigResponse{}},
		{method: http.MethodPut, path: "/api/tokens/config", summary: "Replace token rules",
			desc: "The new rules become a custom configuration.",
			req:  tokens.RuleSet{}, resp: TokenConfigResponse{}, errors: []int{http.StatusBadRequest}},
		{method: http.MethodGet, path: "/api/tokens/presets", summary: "List presets",
			resp: PresetListResponse{}},
		{method: http.MethodPost, path: "/api/tokens/presets/{id}", summary: "Load preset",
			req: PresetPath{}, resp: TokenConfigResponse{}, errors: []int{http.StatusNotFound}},
		{method: http.MethodPost, path: "/api/tokens/reset", summary: "Reset token rules",
			desc: "Restores the balanced preset.", resp: TokenConfigResponse{}},
		{method: http.MethodPost, path: "/api/tokens/calculate/phase1", summary: "Score phase 1",
			req: tokens.Phase1Result{}, resp: TokensResponse{}, errors: []int{http.StatusBadRequest}},
		{method: http.MethodPost, path: "/api/tokens/calculate/phase2", summary: "Score phase 2",
			req: tokens.Phase2Result{}, resp: TokensResponse{}, errors: []int{http.StatusBadRequest}},
		{method: http.MethodPost, path: "/api/tokens/calculate/answer/{phase}", summary: "Score an answer",
			desc: "Scores one answer of phase 3, 4 or 5.",
			req:  answerDoc{}, resp: TokensResponse{}, errors: []int{http.StatusBadRequest}},
		{method: http.MethodGet, path: "/api/tokens/tier", summary: "Score tier",
			desc: "Tier for a token total, relative to the active maximum. Pass tokens as a query parameter.",
			req:  TierQuery{}, resp: TierResponse{}, errors: []int{http.StatusBadRequest}},

		{method: http.MethodGet, path: "/api/config/export", summary: "Export configuration",
			desc: "Phases and settings as an indented JSON document. Pass download=true for an attachment.",
			req:  ExportQuery{}, resp: catalog.Snapshot{}},
		{method: http.MethodPost, path: "/api/config/import", summary: "Import configuration",
			desc: "Replaces phases and settings with an exported document.",
			req:  catalog.Snapshot{}, resp: StatusResponse{},
			errors: []int{http.StatusBadRequest, http.StatusRequestEntityTooLarge}},
		{method: http.MethodPost, path: "/api/config/save", summary: "Save configuration",
			resp: StatusResponse{}, errors: []int{http.StatusInternalServerError}},
		{method: http.MethodPost, path: "/api/config/load", summary: "Reload configuration",
			desc: "Rereads the storage backend, defaulting any missing or corrupt entry.",
			resp: StatusResponse{}, errors: []int{http.StatusInternalServerError}},
		{method: http.MethodPost, path: "/api/config/reset", summary: "Reset configuration",
			desc: "Clears storage and restores the default game.",
			resp: StatusResponse{}, errors: []int{http.StatusInternalServerError}},

		{method: http.MethodGet, path: "/api/events", summary: "Change stream",
			desc:            "Server-Sent Events. Each change event names the area that changed.",
			respContentType: "text/event-stream"},
	}

	for _, op := range ops {
		oc, err := r.NewOperationContext(op.method, op.path)
		if err != nil {
			continue
		}
		oc.SetSummary(op.summary)
		if op.desc != "" {
			oc.SetDescription(op.desc)
		}
		if op.req != nil {
			oc.AddReqStructure(op.req)
		}
		status := op.status
		if status == 0 {
			status = http.StatusOK
		}
		if op.respContentType != "" {
			oc.AddRespStructure(nil, openapi.WithHTTPStatus(status), openapi.WithContentType(op.respContentType))
		} else {
			oc.AddRespStructure(op.resp, openapi.WithHTTPStatus(status))
		}
		for _, code := range op.errors {
			oc.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(code))
		}
		_ = r.AddOperation(oc)
	}

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
