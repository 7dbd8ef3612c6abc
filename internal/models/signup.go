package models

// SignupFormName: имя формы регистрации; остальные формы игнорируются.
const SignupFormName = "unified-signup"

// SubmissionEvent: тело события submission-created от платформы.
type SubmissionEvent struct {
	Payload SubmissionPayload `json:"payload"`
}

// SubmissionPayload описывает отправленную форму.
type SubmissionPayload struct {
	FormName string     `json:"form_name"`
	Data     SignupData `json:"data"`
}

// SignupData: поля формы регистрации.
type SignupData struct {
	Name             string `json:"name" validate:"required"`
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required"`
	Username         string `json:"username" validate:"required"`
	Phone            string `json:"phone,omitempty" validate:"omitempty"`
	SubscriptionPlan string `json:"subscription_plan" validate:"required"`
}

// String скрывает пароль при логировании формы.
func (d SignupData) String() string {
	return "SignupData{name=" + d.Name + " email=" + d.Email + " username=" + d.Username +
		" subscription_plan=" + d.SubscriptionPlan + "}"
}

// SignupResult: итог обработки события формы.
type SignupResult struct {
	Ignored  bool         // форма не является формой регистрации
	FormName string       // имя формы из события
	Profile  *UserProfile // созданный профиль
}
