package i18n

import "golang.org/x/text/language"

// messages is keyed by apperror business code, plus a few transport-level
// keys used by middleware.
var messages = map[language.Tag]map[string]string{
	language.English: {
		"GENERAL":               "Something went wrong",
		"INVALID_FORMAT":        "Invalid data",
		"INVALID_BODY":          "Invalid request body",
		"INVALID_CREDENTIALS":   "Email or password is incorrect",
		"TOKEN_MISSING":         "Authentication required",
		"TOKEN_INVALID":         "Invalid authentication token",
		"TOKEN_EXPIRED":         "Your session has expired",
		"SESSION_REVOKED":       "Your session is no longer valid",
		"WEAK_PASSWORD":         "Password must be between 8 and 72 characters",
		"USER_NOT_FOUND":        "User not found",
		"EMAIL_TAKEN":           "This email is already registered",
		"USERNAME_TAKEN":        "This username is already taken",
		"INVALID_EMAIL":         "Invalid email address",
		"INVALID_USERNAME":      "Username must be 3-30 letters, numbers, underscores or hyphens",
		"IMAGE_NOT_FOUND":       "Image not found",
		"NO_FILES":              "No files were uploaded",
		"TOO_MANY_FILES":        "Too many files in one upload",
		"FILE_TOO_LARGE":        "File is too large",
		"UNSUPPORTED_FILE_TYPE": "Only JPEG, PNG, GIF and WebP images are supported",
		"CORRUPT_IMAGE":         "The image could not be read",
		"ALBUM_NOT_FOUND":       "Album not found",
		"INVALID_ALBUM_NAME":    "Album name must be between 1 and 100 characters",
		"IMAGE_NOT_IN_ALBUM":    "The image is not in this album",
		"SLUG_EXHAUSTED":        "Too many albums share this name",
		"NOT_FOUND":             "Not found",
		"FORBIDDEN":             "You do not have access to this resource",
	},
	language.Vietnamese: {
		"GENERAL":               "Đã có lỗi xảy ra",
		"INVALID_FORMAT":        "Dữ liệu không hợp lệ",
		"INVALID_BODY":          "Nội dung yêu cầu không hợp lệ",
		"INVALID_CREDENTIALS":   "Email hoặc mật khẩu không đúng",
		"TOKEN_MISSING":         "Vui lòng đăng nhập",
		"TOKEN_INVALID":         "Mã xác thực không hợp lệ",
		"TOKEN_EXPIRED":         "Phiên đăng nhập đã hết hạn",
		"SESSION_REVOKED":       "Phiên đăng nhập không còn hiệu lực",
		"WEAK_PASSWORD":         "Mật khẩu phải có từ 8 đến 72 ký tự",
		"USER_NOT_FOUND":        "Không tìm thấy người dùng",
		"EMAIL_TAKEN":           "Email này đã được đăng ký",
		"USERNAME_TAKEN":        "Tên người dùng đã tồn tại",
		"INVALID_EMAIL":         "Địa chỉ email không hợp lệ",
		"INVALID_USERNAME":      "Tên người dùng gồm 3-30 chữ cái, số, gạch dưới hoặc gạch ngang",
		"IMAGE_NOT_FOUND":       "Không tìm thấy ảnh",
		"NO_FILES":              "Chưa có tệp nào được tải lên",
		"TOO_MANY_FILES":        "Quá nhiều tệp trong một lần tải lên",
		"FILE_TOO_LARGE":        "Tệp quá lớn",
		"UNSUPPORTED_FILE_TYPE": "Chỉ hỗ trợ ảnh JPEG, PNG, GIF và WebP",
		"CORRUPT_IMAGE":         "Không thể đọc được ảnh",
		"ALBUM_NOT_FOUND":       "Không tìm thấy album",
		"INVALID_ALBUM_NAME":    "Tên album phải từ 1 đến 100 ký tự",
		"IMAGE_NOT_IN_ALBUM":    "Ảnh không thuộc album này",
		"SLUG_EXHAUSTED":        "Có quá nhiều album trùng tên",
		"NOT_FOUND":             "Không tìm thấy",
		"FORBIDDEN":             "Bạn không có quyền truy cập tài nguyên này",
	},
}
