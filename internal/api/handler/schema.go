package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error   string `json:"error"`
	PlaceID string `json:"placeId,omitempty"`
}

// --- Auth ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email"    validate:"omitempty,email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type operatorLoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// --- Users ---

type preferencesView struct {
	AlsoPaid   bool     `json:"alsoPaid"`
	Categories []string `json:"categories"`
}

type discoveredPlaceView struct {
	PlaceID   string    `json:"placeId"`
	VisitedAt time.Time `json:"visitedAt"`
}

type missionProgressView struct {
	MissionID             string   `json:"missionId"`
	RequiredPlacesVisited []string `json:"requiredPlacesVisited"`
	Progress              int      `json:"progress"`
	Completed             bool     `json:"completed"`
}

// userView is the full profile, only ever shown to its owner.
type userView struct {
	ID                 string                `json:"id"`
	Username           string                `json:"username"`
	Email              string                `json:"email,omitempty"`
	Name               string                `json:"name,omitempty"`
	Surname            string                `json:"surname,omitempty"`
	ProfileImage       string                `json:"profileImage,omitempty"`
	Exp                int                   `json:"exp"`
	Expert             bool                  `json:"expert"`
	Preferences        preferencesView       `json:"preferences"`
	DiscoveredPlaces   []discoveredPlaceView `json:"discoveredPlaces"`
	MissionsProgresses []missionProgressView `json:"missionsProgresses"`
	CreatedAt          time.Time             `json:"createdAt"`
}

type publicUserView struct {
	Username          string `json:"username"`
	Name              string `json:"name,omitempty"`
	Surname           string `json:"surname,omitempty"`
	ProfileImage      string `json:"profileImage,omitempty"`
	Exp               int    `json:"exp"`
	Expert            bool   `json:"expert"`
	DiscoveredCount   int    `json:"discoveredCount"`
	CompletedMissions int    `json:"completedMissions"`
	Self              bool   `json:"self"`
}

type preferencesRequest struct {
	AlsoPaid   *bool    `json:"alsoPaid"`
	Categories []string `json:"categories"`
}

// visitRequest accepts coordinates as JSON numbers or strings; parsing is
// left to the visit validator so malformed values surface as
// InvalidCoordinates.
type visitRequest struct {
	Lat any `json:"lat" swaggertype:"number"`
	Lon any `json:"lon" swaggertype:"number"`
}

type visitResponse struct {
	Success           bool     `json:"success"`
	PlaceID           string   `json:"placeId"`
	Discovered        bool     `json:"discovered"`
	ExpGained         int      `json:"expGained"`
	CompletedMissions []string `json:"completedMissions"`
	Exp               int      `json:"exp"`
	Expert            bool     `json:"expert"`
}

// --- Missions ---

type missionView struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description,omitempty"`
	MinLevel       int      `json:"minLevel"`
	RewardExp      int      `json:"rewardExp"`
	Categories     []string `json:"categories"`
	RequiredPlaces []string `json:"requiredPlaces"`
	RequiredCount  int      `json:"requiredCount"`
}

type activateMissionRequest struct {
	MissionID string `json:"missionId" validate:"required"`
}

type createMissionRequest struct {
	Name           string   `json:"name"           validate:"required,max=120"`
	Description    string   `json:"description"    validate:"max=2000"`
	MinLevel       int      `json:"minLevel"       validate:"min=0"`
	RewardExp      int      `json:"rewardExp"      validate:"required,gt=0"`
	Categories     []string `json:"categories"     validate:"dive,category"`
	RequiredPlaces []string `json:"requiredPlaces" validate:"dive,required"`
	RequiredCount  int      `json:"requiredCount"  validate:"min=0"`
}

// --- Places ---

type locationView struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type placeView struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Categories  []string      `json:"categories"`
	Location    *locationView `json:"location,omitempty"`
	Images      []string      `json:"images"`
	IsFree      bool          `json:"isFree"`
	// Distance from the caller in kilometers, set when coordinates were sent.
	Distance *float64 `json:"distance,omitempty"`
}

// placeRequest is shared by new-place and edit submissions; absent fields
// stay nil. Field rules are enforced by the moderation service.
type placeRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Categories  []string              `json:"categories"`
	Location    *placeLocationRequest `json:"location"`
	Images      []string              `json:"images"`
	IsFree      *bool                 `json:"isFree"`
}

// placeLocationRequest accepts numbers or numeric strings.
type placeLocationRequest struct {
	Lat any `json:"lat" swaggertype:"number"`
	Lon any `json:"lon" swaggertype:"number"`
}

// --- Moderation ---

type placeChangesView struct {
	Name        *string       `json:"name,omitempty"`
	Description *string       `json:"description,omitempty"`
	Categories  []string      `json:"categories,omitempty"`
	Location    *locationView `json:"location,omitempty"`
	Images      []string      `json:"images,omitempty"`
	IsFree      *bool         `json:"isFree,omitempty"`
}

type placeRequestView struct {
	ID              string           `json:"id"`
	UserID          string           `json:"userId"`
	PlaceID         string           `json:"placeId,omitempty"`
	ProposedChanges placeChangesView `json:"proposedChanges"`
	IsNewPlace      bool             `json:"isNewPlace"`
	Status          string           `json:"status"`
	OperatorID      string           `json:"operatorId,omitempty"`
	OperatorComment string           `json:"operatorComment,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

type decisionRequest struct {
	Status          string `json:"status"          validate:"required"`
	OperatorComment string `json:"operatorComment" validate:"max=2000"`
}

type decisionResponse struct {
	Request    placeRequestView `json:"request"`
	Place      *placeView       `json:"place,omitempty"`
	ExpAwarded int              `json:"expAwarded"`
}

type operatorView struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Name    string `json:"name,omitempty"`
	Surname string `json:"surname,omitempty"`
}

// --- Heatmap ---

type heatmapCellView struct {
	PlaceID           string        `json:"placeId"`
	Name              string        `json:"name"`
	Location          *locationView `json:"location,omitempty"`
	CompletedMissions int           `json:"completedMissions"`
}
