package handlers

type bookTrainerRequest struct {
	Username        string `json:"username" validate:"required"`
	TrainerUsername string `json:"trainerUsername" validate:"required"`
	Date            string `json:"date" validate:"required"`
	TimeSlot        string `json:"timeSlot" validate:"required"`
}

type availabilityRequest struct {
	Date      string   `json:"date" validate:"required"`
	TimeSlots []string `json:"timeSlots" validate:"required,min=1,dive,required"`
}

type createTrainerRequest struct {
	Username     string                `json:"username" validate:"required"`
	Name         string                `json:"name" validate:"required"`
	Specialty    string                `json:"specialty"`
	Bio          string                `json:"bio" validate:"max=2000"`
	Availability []availabilityRequest `json:"availability" validate:"dive"`
}

type sendMessageRequest struct {
	SenderUsername string `json:"senderUsername" validate:"required"`
	Content        string `json:"content" validate:"required,max=2000"`
}

type registerUserRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user trainer admin"`
}

type changeRoleRequest struct {
	Username string `json:"username" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=user trainer admin"`
}

type createMatchRequest struct {
	Username      string `json:"username" validate:"required"`
	Description   string `json:"description" validate:"max=2000"`
	Level         string `json:"level"`
	Location      string `json:"location" validate:"required"`
	MatchDateTime string `json:"matchDateTime" validate:"required"`
	EndTime       string `json:"endTime"`
	TotalSpots    int    `json:"totalSpots" validate:"omitempty,min=2,max=8"`
}

type matchPlayerRequest struct {
	Username string `json:"username" validate:"required"`
}

type reserveSpotRequest struct {
	SpotIndex *int  `json:"spotIndex" validate:"required"`
	Reserve   *bool `json:"reserve" validate:"required"`
}

// bookingErrorResponse is the error body of the booking endpoint.
type bookingErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

type relayResponse struct {
	Published int    `json:"published"`
	Error     string `json:"error,omitempty"`
}
