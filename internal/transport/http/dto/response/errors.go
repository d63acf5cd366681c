package response

var (
	ErrPostNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Post not found",
	}

	ErrContactNotFound = ErrorResponse{
		Status:  "error",
		Error:   "not_found",
		Details: "Contact submission not found",
	}

	ErrSlugConflict = ErrorResponse{
		Status:  "error",
		Error:   "slug_conflict",
		Details: "A post with this slug already exists",
	}

	ErrRateLimited = ErrorResponse{
		Status:  "error",
		Error:   "rate_limited",
		Details: "Too many requests, try again later",
	}

	ErrGeneratorDisabled = ErrorResponse{
		Status:  "error",
		Error:   "ai_disabled",
		Details: "AI post generation is not configured",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Something went wrong, please try again",
	}
)
