package i18n

// UIStrings carries the static interface text served with list responses.
type UIStrings struct {
	LatestNews           string `json:"latestNews"`
	AllProjects          string `json:"allProjects"`
	SearchResults        string `json:"searchResults"`
	OtherSearchResults   string `json:"otherSearchResults"`
	OtherNews            string `json:"otherNews"`
	OtherProjects        string `json:"otherProjects"`
	NoArticlesInLanguage string `json:"noArticlesInLanguage"`
	NoProjectsInLanguage string `json:"noProjectsInLanguage"`
	NoResultsFound       string `json:"noResultsFound"`
	Information          string `json:"information"`
	ReadMore             string `json:"readMore"`
	Author               string `json:"author"`
	DateNotSpecified     string `json:"dateNotSpecified"`
	Views                string `json:"views"`
}

var uiStrings = map[string]UIStrings{
	"uzb": {
		LatestNews:           "So`ngi yangiliklar",
		AllProjects:          "Barcha loyihalar",
		SearchResults:        "qidiruv natijalari",
		OtherSearchResults:   "Boshqa qidiruv natijalari",
		OtherNews:            "Boshqa yangiliklar",
		OtherProjects:        "Boshqa loyihalar",
		NoArticlesInLanguage: "Tanlangan tilda maqolalar hozircha mavjud emas. Barcha mavjud maqolalar ko`rsatilmoqda.",
		NoProjectsInLanguage: "Tanlangan tilda loyihalar hozircha mavjud emas. Barcha mavjud loyihalar ko`rsatilmoqda.",
		NoResultsFound:       "Natija topilmadi",
		Information:          "Ma`lumot",
		ReadMore:             "Batafsil o`qish",
		Author:               "Muallif",
		DateNotSpecified:     "Sana ko`rsatilmagan",
		Views:                "ko`rishlar",
	},
	"rus": {
		LatestNews:           "Последние новости",
		AllProjects:          "Все проекты",
		SearchResults:        "результаты поиска",
		OtherSearchResults:   "Другие результаты поиска",
		OtherNews:            "Другие новости",
		OtherProjects:        "Другие проекты",
		NoArticlesInLanguage: "Статьи на выбранном языке пока недоступны. Показаны все доступные статьи.",
		NoProjectsInLanguage: "Проекты на выбранном языке пока недоступны. Показаны все доступные проекты.",
		NoResultsFound:       "Результатов не найдено",
		Information:          "Информация",
		ReadMore:             "Читать подробнее",
		Author:               "Автор",
		DateNotSpecified:     "Дата не указана",
		Views:                "просмотров",
	},
	"eng": {
		LatestNews:           "Latest News",
		AllProjects:          "All Projects",
		SearchResults:        "search results",
		OtherSearchResults:   "Other search results",
		OtherNews:            "Other news",
		OtherProjects:        "Other projects",
		NoArticlesInLanguage: "Articles in the selected language are not available yet. Showing all available articles.",
		NoProjectsInLanguage: "Projects in the selected language are not available yet. Showing all available projects.",
		NoResultsFound:       "No results found",
		Information:          "Information",
		ReadMore:             "Read more",
		Author:               "Author",
		DateNotSpecified:     "Date not specified",
		Views:                "views",
	},
	"uzb_cyr": {
		LatestNews:           "Сўнги янгиликлар",
		AllProjects:          "Барча лойиҳалар",
		SearchResults:        "қидирув натижалари",
		OtherSearchResults:   "Бошқа қидирув натижалари",
		OtherNews:            "Бошқа янгиликлар",
		OtherProjects:        "Бошқа лойиҳалар",
		NoArticlesInLanguage: "Танланган тилда мақолалар ҳозирча мавжуд эмас. Барча мавжуд мақолалар кўрсатилмоқда.",
		NoProjectsInLanguage: "Танланган тилда лойиҳалар ҳозирча мавжуд эмас. Барча мавжуд лойиҳалар кўрсатилмоқда.",
		NoResultsFound:       "Натижа топилмади",
		Information:          "Маълумот",
		ReadMore:             "Батафсил ўқиш",
		Author:               "Муаллиф",
		DateNotSpecified:     "Сана кўрсатилмаган",
		Views:                "кўришлар",
	},
}

// Strings returns the UI text for a locale, falling back to the default
// locale for unknown codes.
func Strings(code string) UIStrings {
	if strings, ok := uiStrings[Resolve(code)]; ok {
		return strings
	}
	return uiStrings[DefaultLocale]
}
