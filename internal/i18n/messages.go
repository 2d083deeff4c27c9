// Package i18n holds the user-facing message table. Azerbaijani is the
// platform default; English and Russian are fallbacks for the same keys.
package i18n

// DefaultLanguage is used when no language preference is stored.
const DefaultLanguage = "az"

var messages = map[string]map[string]string{
	"az": {
		"error.generic":            "Xəta baş verdi",
		"error.register":           "Qeydiyyat zamanı xəta baş verdi",
		"error.login":              "Daxil olmaq mümkün olmadı",
		"error.server":             "Server xətası, daha sonra yenidən cəhd edin",
		"error.network":            "Şəbəkə bağlantısı alınmadı",
		"error.session_expired":    "Sessiyanın vaxtı bitib, yenidən daxil olun",
		"validate.email_required":  "E-mail tələb olunur",
		"validate.email_invalid":   "E-mail formatı düzgün deyil",
		"validate.nickname":        "Nickname tələb olunur",
		"validate.password":        "Şifrə tələb olunur",
		"validate.password_min":    "Şifrə minimum 6 simvol olmalıdır",
		"validate.confirm":         "Şifrə təsdiqi tələb olunur",
		"validate.mismatch":        "Şifrələr uyğun gəlmir",
		"validate.terms":           "Şərtləri qəbul etməlisiniz",
		"validate.amount_positive": "Məbləğ sıfırdan böyük olmalıdır",
	},
	"en": {
		"error.generic":            "An error occurred",
		"error.register":           "Registration failed",
		"error.login":              "Login failed",
		"error.server":             "Server error, please try again later",
		"error.network":            "Network connection failed",
		"error.session_expired":    "Session expired, please log in again",
		"validate.email_required":  "E-mail is required",
		"validate.email_invalid":   "Invalid e-mail format",
		"validate.nickname":        "Nickname is required",
		"validate.password":        "Password is required",
		"validate.password_min":    "Password must be at least 6 characters",
		"validate.confirm":         "Password confirmation is required",
		"validate.mismatch":        "Passwords do not match",
		"validate.terms":           "You must accept the terms",
		"validate.amount_positive": "Amount must be greater than zero",
	},
	"ru": {
		"error.generic":            "Произошла ошибка",
		"error.register":           "Ошибка при регистрации",
		"error.login":              "Не удалось войти",
		"error.server":             "Ошибка сервера, попробуйте позже",
		"error.network":            "Нет соединения с сетью",
		"error.session_expired":    "Сессия истекла, войдите заново",
		"validate.email_required":  "Требуется e-mail",
		"validate.email_invalid":   "Неверный формат e-mail",
		"validate.nickname":        "Требуется никнейм",
		"validate.password":        "Требуется пароль",
		"validate.password_min":    "Пароль должен быть не короче 6 символов",
		"validate.confirm":         "Требуется подтверждение пароля",
		"validate.mismatch":        "Пароли не совпадают",
		"validate.terms":           "Необходимо принять условия",
		"validate.amount_positive": "Сумма должна быть больше нуля",
	},
}

// T returns the message for key in lang, falling back to the default
// language and then to the key itself.
func T(lang, key string) string {
	if m, ok := messages[lang]; ok {
		if s, ok := m[key]; ok {
			return s
		}
	}
	if s, ok := messages[DefaultLanguage][key]; ok {
		return s
	}
	return key
}

// Supported lists the languages the message table covers.
func Supported() []string {
	return []string{"az", "en", "ru"}
}
