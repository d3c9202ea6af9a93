package models

type SignupRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
	UserName    string `json:"user_name"`
	Designation string `json:"designation"`
	CompanyMail string `json:"company_mail"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type CheckResumeResponse struct {
	Result string `json:"result"`
}

type ResumesResponse struct {
	Resumes []ResumeReview `json:"resumes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}
