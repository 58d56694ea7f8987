// Package i18n holds the bilingual message catalog for API-facing strings.
// The studio serves English and Traditional Chinese.
package i18n

import "strings"

const (
	LangEN   = "en"
	LangZhTW = "zh-TW"
)

// Message keys used by the HTTP layer.
const (
	MsgBookingConfirmed = "booking_confirmed"
	MsgAlreadyBooked    = "already_booked"
	MsgClassFull        = "class_full"
	MsgQuotaExceeded    = "quota_exceeded"
	MsgPastOccurrence   = "past_occurrence"
	MsgMemberNotFound   = "member_not_found"
	MsgBookingNotFound  = "booking_not_found"
	MsgInstancesBuilt   = "instances_built"
)

var catalog = map[string]map[string]string{
	LangEN: {
		MsgBookingConfirmed: "Your booking is confirmed.",
		MsgAlreadyBooked:    "You already have a booking for this class.",
		MsgClassFull:        "This class is fully booked.",
		MsgQuotaExceeded:    "You have used all sessions in your current plan period.",
		MsgPastOccurrence:   "This class has already taken place.",
		MsgMemberNotFound:   "Member not found.",
		MsgBookingNotFound:  "Booking not found.",
		MsgInstancesBuilt:   "Schedule instances generated successfully.",
	},
	LangZhTW: {
		MsgBookingConfirmed: "您的預約已確認。",
		MsgAlreadyBooked:    "您已預約此課程。",
		MsgClassFull:        "此課程已額滿。",
		MsgQuotaExceeded:    "您已用完本期方案的所有課程額度。",
		MsgPastOccurrence:   "此課程已結束。",
		MsgMemberNotFound:   "找不到會員資料。",
		MsgBookingNotFound:  "找不到預約記錄。",
		MsgInstancesBuilt:   "課表場次已成功產生。",
	},
}

// ClassNames maps canonical class identifiers to localized display labels.
var ClassNames = map[string]map[string]string{
	LangEN: {
		"STRENGTH":        "Strength",
		"SWING MECHANICS": "Swing Mechanics",
		"MOBILITY":        "Mobility",
		"SHORT GAME":      "Short Game",
	},
	LangZhTW: {
		"STRENGTH":        "肌力訓練",
		"SWING MECHANICS": "揮桿力學",
		"MOBILITY":        "活動度訓練",
		"SHORT GAME":      "短桿技巧",
	},
}

// Normalize maps a language tag (or Accept-Language value) to a supported
// language, defaulting to English.
func Normalize(lang string) string {
	lang = strings.TrimSpace(lang)
	if i := strings.IndexAny(lang, ",;"); i >= 0 {
		lang = lang[:i]
	}
	switch strings.ToLower(lang) {
	case "zh-tw", "zh-hant", "zh":
		return LangZhTW
	default:
		return LangEN
	}
}

// T resolves a message key in the given language, falling back to English,
// then to the key itself.
func T(lang, key string) string {
	lang = Normalize(lang)
	if msg, ok := catalog[lang][key]; ok {
		return msg
	}
	if msg, ok := catalog[LangEN][key]; ok {
		return msg
	}
	return key
}

// ClassLabel resolves a localized class display name, falling back to the
// canonical identifier.
func ClassLabel(lang, class string) string {
	lang = Normalize(lang)
	if label, ok := ClassNames[lang][class]; ok {
		return label
	}
	return class
}
