package dto

// --- Rubric write requests (admin) ---

type ParameterWriteRequest struct {
	Name string `json:"name" binding:"required"`
}

type AspectCreateRequest struct {
	ParameterID uint   `json:"parameter_id" binding:"required"`
	Name        string `json:"name" binding:"required"`
}

// AspectUpdateRequest allows renaming and, when ParameterID is set,
// re-parenting under another parameter.
type AspectUpdateRequest struct {
	Name        string `json:"name" binding:"required"`
	ParameterID *uint  `json:"parameter_id"`
}

type SubAspectCreateRequest struct {
	AspectID uint   `json:"aspect_id" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type SubAspectUpdateRequest struct {
	Name     string `json:"name" binding:"required"`
	AspectID *uint  `json:"aspect_id"`
}

// --- Rubric responses ---

type SubAspectResponse struct {
	ID       uint   `json:"id"`
	AspectID uint   `json:"aspect_id,omitempty"`
	Name     string `json:"name"`
}

type AspectResponse struct {
	ID          uint                `json:"id"`
	ParameterID uint                `json:"parameter_id"`
	Name        string              `json:"name"`
	SubAspects  []SubAspectResponse `json:"sub_aspects"`
}

type ParameterResponse struct {
	ID      uint             `json:"id"`
	Name    string           `json:"name"`
	Aspects []AspectResponse `json:"aspects"`
}

type ScoreCategoryResponse struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	MinScore int    `json:"min_score"`
	MaxScore int    `json:"max_score"`
}
