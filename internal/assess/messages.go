package assess

import "github.com/hemant18-09/DOCai/internal/model"

// NoSignalsMessage is returned when the screen finds nothing.
const NoSignalsMessage = "No emergency signals detected by screen."

// emergencyMessages holds the localized emergency guidance shown when a
// report crosses the threshold. Speech locales without a translation
// (ta, kn, ml) fall back to English.
var emergencyMessages = map[string]string{
	model.LangEnglish: "⚠️ This may be a medical emergency.\n\n" +
		"Based on your symptoms, it may not be safe to continue.\n" +
		"Please seek immediate medical attention or go to the nearest emergency department now.",

	model.LangHindi: "⚠️ यह एक चिकित्सा आपात स्थिति हो सकती है।\n\n" +
		"आपके लक्षणों के आधार पर यहाँ आगे बढ़ना सुरक्षित नहीं है।\n" +
		"कृपया तुरंत नज़दीकी अस्पताल या आपातकालीन सेवा से संपर्क करें।",

	model.LangTelugu: "⚠️ ఇది వైద్య అత్యవసర పరిస్థితి కావచ్చు.\n\n" +
		"మీ లక్షణాల ఆధారంగా ఇక్కడ కొనసాగడం సురక్షితం కాదు.\n" +
		"దయచేసి వెంటనే సమీప ఆసుపత్రికి వెళ్లండి లేదా అత్యవసర వైద్య సహాయం పొందండి.",
}

// EmergencyMessage returns the localized emergency text for a language,
// falling back to English when no translation exists.
func EmergencyMessage(lang string) string {
	if msg, ok := emergencyMessages[lang]; ok {
		return msg
	}
	return emergencyMessages[model.LangEnglish]
}
