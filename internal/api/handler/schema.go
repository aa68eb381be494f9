package handler

// apiResponse is the canonical envelope for all API responses.
type apiResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors"`
	Data    any      `json:"data,omitempty"`
	Token   string   `json:"token,omitempty"`
}

// Response message texts. Clients match on these strings.
const (
	msgUserCreated        = "User created successfully."
	msgLogin              = "Successfully logged in."
	msgInvalidCredentials = "Invalid credentials"
	msgPostCreated        = "Post created successfully."
	msgPostUpdated        = "Post updated successfully."
	msgPostRetrieved      = "Post retrieved successfully"
	msgPostsRetrieved     = "Posts retrieved successfully"
	msgPostNotFound       = "Post not found."
	msgInvalidFields      = "Invalid fields"
)

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type publishPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	IsHidden bool   `json:"is_hidden"`
}

// updatePostRequest distinguishes absent fields (nil) from zero values, so a
// partial update only touches what the caller actually sent.
type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	IsHidden *bool   `json:"is_hidden"`
}

type postData struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	IsHidden  bool   `json:"is_hidden"`
	AuthorID  string `json:"author_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type activityData struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	ActorID   string `json:"actor_id"`
	Timestamp string `json:"timestamp"`
}
