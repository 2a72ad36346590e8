package models

type PredictMatchupRequest struct {
	TeamA string `json:"team_a" validate:"required,max=100"`
	TeamB string `json:"team_b" validate:"required,max=100"`
}

type SimulateMatchupRequest struct {
	TeamA      string `json:"team_a" validate:"required,max=100"`
	TeamB      string `json:"team_b" validate:"required,max=100"`
	Iterations int    `json:"iterations" validate:"omitempty,min=1,max=100000"`
	Seed       uint64 `json:"seed"`
}

type SimulateTournamentRequest struct {
	Teams []string `json:"teams" validate:"required,min=2,max=64,dive,required,max=100"`
	Seed  uint64   `json:"seed"`
}

type IngestResponse struct {
	Status   string `json:"status"`
	Accepted int    `json:"accepted"`
	Rejected int    `json:"rejected"`
}
