// Package i18n holds the English and Turkish strings of the client.
package i18n

import "fmt"

// Key identifies a translated string.
type Key string

const (
	Work                    Key = "work"
	Meeting                 Key = "meeting"
	Idle                    Key = "idle"
	Break                   Key = "break"
	BreakStarted            Key = "breakStarted"
	BreakEnded              Key = "breakEnded"
	Min                     Key = "min"
	Sec                     Key = "sec"
	MinWorkWarning          Key = "minWorkWarning"
	ModeLocked              Key = "modeLocked"
	SelectTaskFirst         Key = "selectTaskFirst"
	EnterDetails            Key = "enterDetails"
	ModalTitle              Key = "modalTitle"
	MeetingModalTitle       Key = "meetingModalTitle"
	ModalDesc               Key = "modalDesc"
	MeetingModalDesc        Key = "meetingModalDesc"
	ModalPlaceholder        Key = "modalPlaceholder"
	MeetingModalPlaceholder Key = "meetingModalPlaceholder"
	IdleTitle               Key = "idleTitle"
	IdleDesc                Key = "idleDesc"
	IdleCountdown           Key = "idleCountdown"
	IdleNoteShort           Key = "idleNoteShort"
	IdleNoteMinutes         Key = "idleNoteMinutes"
	SavingDetails           Key = "savingDetails"
	DetailsSaved            Key = "detailsSaved"
	DetailsFailed           Key = "detailsFailed"
	TimesheetSent           Key = "timesheetSent"
	TimesheetFailed         Key = "timesheetFailed"
	IdleAutoSaved           Key = "idleAutoSaved"
	IdleAutoSaveFailed      Key = "idleAutoSaveFailed"
	IdleCancelled           Key = "idleCancelled"
	StartFailed             Key = "startFailed"
	LoggingYes              Key = "loggingYes"
	LoggingNo               Key = "loggingNo"
	SelectProject           Key = "selectProject"
	SelectTask              Key = "selectTask"
	NoProjects              Key = "noProjects"
	NoTasks                 Key = "noTasks"
	Project                 Key = "project"
	Task                    Key = "task"
	Total                   Key = "total"
)

var tables = map[string]map[Key]string{
	"en": {
		Work:                    "WORK",
		Meeting:                 "MEETING",
		Idle:                    "IDLE",
		Break:                   "BREAK",
		BreakStarted:            "You are on a BREAK – Relax and recharge ☕",
		BreakEnded:              "Break over. Back to work!",
		Min:                     "min",
		Sec:                     "sec",
		MinWorkWarning:          "⚠️ You must work at least 1 minute to finish a task.",
		ModeLocked:              "⛔ You cannot change mode while timer is running. Please finish your task first.",
		SelectTaskFirst:         "⚠️ Please select a task first!",
		EnterDetails:            "⚠️ Please enter details!",
		ModalTitle:              "📝 Task Completion",
		MeetingModalTitle:       "📝 Meeting Completion",
		ModalDesc:               "Please describe what you have completed for this task:",
		MeetingModalDesc:        "Please describe what was discussed in this meeting:",
		ModalPlaceholder:        "Type your task details here...",
		MeetingModalPlaceholder: "Type your meeting notes here...",
		IdleTitle:               "⏸️ You're Idle",
		IdleDesc:                "You've been inactive. Timer is paused.",
		IdleCountdown:           "Auto-saving in %d s (press c to continue working)",
		IdleNoteShort:           "User worked for less than 1 minute and stayed idle for %d seconds.",
		IdleNoteMinutes:         "User worked for %d minutes and stayed idle for %d seconds.",
		SavingDetails:           "💾 Saving details...",
		DetailsSaved:            "✅ Details saved!",
		DetailsFailed:           "❌ Failed to save details",
		TimesheetSent:           "✅ Timesheet sent!",
		TimesheetFailed:         "❌ Error sending timesheet or email",
		IdleAutoSaved:           "✅ Auto-saved due to idle",
		IdleAutoSaveFailed:      "❌ Failed to auto-save",
		IdleCancelled:           "⏱️ Countdown canceled. Back to work!",
		StartFailed:             "❌ Could not register session start",
		LoggingYes:              "YES",
		LoggingNo:               "NO",
		SelectProject:           "Select a Project",
		SelectTask:              "-- Select a Task --",
		NoProjects:              "No projects are assigned to you. Press m for meeting mode.",
		NoTasks:                 "This project has no open tasks.",
		Project:                 "Project",
		Task:                    "Task",
		Total:                   "Total Time Count",
	},
	"tr": {
		Work:                    "ÇALIŞMA",
		Meeting:                 "TOPLANTI",
		Idle:                    "BOŞTA",
		Break:                   "MOLA",
		BreakStarted:            "Şu anda MOLA'dasınız – Rahatlayın ve enerji toplayın ☕",
		BreakEnded:              "Mola bitti. Çalışmaya devam!",
		Min:                     "dk",
		Sec:                     "sn",
		MinWorkWarning:          "⚠️ Bir görevi bitirmek için en az 1 dakika çalışmalısınız.",
		ModeLocked:              "⛔ Zamanlayıcı çalışırken mod değiştiremezsiniz. Lütfen önce görevi bitirin.",
		SelectTaskFirst:         "⚠️ Lütfen önce bir iş emri seçin!",
		EnterDetails:            "⚠️ Lütfen detayları girin!",
		ModalTitle:              "📝 İş Tamamlandı",
		MeetingModalTitle:       "📝 Toplantı Tamamlandı",
		ModalDesc:               "Bu İş Emri için ne yaptığınızı açıklayın:",
		MeetingModalDesc:        "Bu toplantıda neler konuşulduğunu açıklayın:",
		ModalPlaceholder:        "İş Emri detaylarını buraya yazın...",
		MeetingModalPlaceholder: "Toplantı notlarını buraya yazın...",
		IdleTitle:               "⏸️ Boştasınız",
		IdleDesc:                "Bir süredir işlem yapmadınız. Zamanlayıcı duraklatıldı.",
		IdleCountdown:           "%d sn içinde otomatik kaydedilecek (çalışmaya devam için c)",
		IdleNoteShort:           "Kullanıcı 1 dakikadan az çalıştı ve %d saniye boşta kaldı.",
		IdleNoteMinutes:         "Kullanıcı %d dakika çalıştı ve %d saniye boşta kaldı.",
		SavingDetails:           "💾 Detaylar kaydediliyor...",
		DetailsSaved:            "✅ Detaylar kaydedildi!",
		DetailsFailed:           "❌ Detaylar kaydedilemedi",
		TimesheetSent:           "✅ Zaman çizelgesi gönderildi!",
		TimesheetFailed:         "❌ Zaman çizelgesi veya e-posta gönderilemedi",
		IdleAutoSaved:           "✅ Boşta kalındığı için otomatik kaydedildi",
		IdleAutoSaveFailed:      "❌ Otomatik kayıt başarısız",
		IdleCancelled:           "⏱️ Geri sayım iptal edildi. Çalışmaya devam!",
		StartFailed:             "❌ Oturum başlangıcı kaydedilemedi",
		LoggingYes:              "EVET",
		LoggingNo:               "HAYIR",
		SelectProject:           "Proje Seçin",
		SelectTask:              "-- İş Emri Seçin --",
		NoProjects:              "Size atanmış proje yok. Toplantı modu için m'ye basın.",
		NoTasks:                 "Bu projede açık iş emri yok.",
		Project:                 "Proje",
		Task:                    "İş Emri",
		Total:                   "Toplam Süre",
	},
}

// Supported reports whether lang has a translation table.
func Supported(lang string) bool {
	_, ok := tables[lang]
	return ok
}

// Languages returns the supported language codes.
func Languages() []string {
	return []string{"en", "tr"}
}

// T returns the string for key in lang, falling back to English and then
// to the key itself.
func T(lang string, key Key) string {
	if s, ok := tables[lang][key]; ok {
		return s
	}
	if s, ok := tables["en"][key]; ok {
		return s
	}
	return string(key)
}

// Tf formats the string for key in lang with args.
func Tf(lang string, key Key, args ...any) string {
	return fmt.Sprintf(T(lang, key), args...)
}

// Summary renders the humanized "N min M sec" total.
func Summary(lang string, elapsedSeconds int) string {
	return fmt.Sprintf("%d %s %d %s", elapsedSeconds/60, T(lang, Min), elapsedSeconds%60, T(lang, Sec))
}

// Clock renders elapsed seconds as HH:MM:SS.
func Clock(elapsedSeconds int) string {
	h := elapsedSeconds / 3600
	m := (elapsedSeconds % 3600) / 60
	s := elapsedSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// IdleNote is the note sent with an idle auto-save.
func IdleNote(lang string, minutesWorked, idleSeconds int) string {
	if minutesWorked == 0 {
		return Tf(lang, IdleNoteShort, idleSeconds)
	}
	return Tf(lang, IdleNoteMinutes, minutesWorked, idleSeconds)
}
