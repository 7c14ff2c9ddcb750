package dto

type ControlInput struct {
	Km    *float64 `json:"km"`
	Miles *float64 `json:"miles"`
}

type SheetRequest struct {
	BrevetKm  int            `json:"brevet_km"`
	StartTime string         `json:"start_time"`
	Controls  []ControlInput `json:"controls"`
}

type ControlRow struct {
	Index     int    `json:"index"`
	Miles     string `json:"miles"`
	Km        string `json:"km"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	BrevetID  string `json:"brevet_id,omitempty"`
}

type SubmitControlsRequest struct {
	Controls []ControlRow `json:"controls"`
}

type ListControlsResponse struct {
	Controls []ControlRow `json:"controls"`
}
