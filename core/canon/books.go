package canon

// canonicalBooks is the static 66-book canon with localized titles and the
// free-text abbreviations operators actually type. Ordinals 1-39 form the
// Old Testament, 40-66 the New Testament.
var canonicalBooks = [canonicalBookCount]Book{
	// Old Testament
	{Code: "GEN", Ordinal: 1, Titles: map[Language]string{LangRU: "Бытие", LangKZ: "Жаратылыс", LangKY: "Башталыш"}, Abbrevs: []string{"быт", "бытие", "жаратылыс", "башталыш"}},
	{Code: "EXO", Ordinal: 2, Titles: map[Language]string{LangRU: "Исход", LangKZ: "Шығу", LangKY: "Чыгуу"}, Abbrevs: []string{"исх", "исход", "шығу", "чыгуу"}},
	{Code: "LEV", Ordinal: 3, Titles: map[Language]string{LangRU: "Левит", LangKZ: "Леуіліктер", LangKY: "Левиттер"}, Abbrevs: []string{"лев", "левит", "леуіліктер", "левиттер"}},
	{Code: "NUM", Ordinal: 4, Titles: map[Language]string{LangRU: "Числа", LangKZ: "Сандар", LangKY: "Сандар"}, Abbrevs: []string{"чис", "числа", "сандар"}},
	{Code: "DEU", Ordinal: 5, Titles: map[Language]string{LangRU: "Второзаконие", LangKZ: "Заңды қайталау", LangKY: "Мыйзамдын кайталанышы"}, Abbrevs: []string{"вт", "втор", "второзаконие", "заңдықайталау", "мыйзамдынкайталанышы"}},
	{Code: "JOS", Ordinal: 6, Titles: map[Language]string{LangRU: "Иисус Навин", LangKZ: "Ешуа", LangKY: "Жошуа"}, Abbrevs: []string{"иис", "нав", "иисуснавин", "ешуа", "жошуа"}},
	{Code: "JDG", Ordinal: 7, Titles: map[Language]string{LangRU: "Судьи", LangKZ: "Билер", LangKY: "Соттор"}, Abbrevs: []string{"суд", "судьи", "билер", "соттор"}},
	{Code: "RUT", Ordinal: 8, Titles: map[Language]string{LangRU: "Руфь", LangKZ: "Рут", LangKY: "Рут"}, Abbrevs: []string{"руф", "руфь", "рут"}},
	{Code: "1SA", Ordinal: 9, Titles: map[Language]string{LangRU: "1-я Царств", LangKZ: "Патшалықтар 1", LangKY: "1 Самуел"}, Abbrevs: []string{"1цар", "1царств", "патшалықтар1", "1самуел"}},
	{Code: "2SA", Ordinal: 10, Titles: map[Language]string{LangRU: "2-я Царств", LangKZ: "Патшалықтар 2", LangKY: "2 Самуел"}, Abbrevs: []string{"2цар", "2царств", "патшалықтар2", "2самуел"}},
	{Code: "1KI", Ordinal: 11, Titles: map[Language]string{LangRU: "3-я Царств", LangKZ: "Патшалықтар 3", LangKY: "1 Падышалар"}, Abbrevs: []string{"3цар", "3царств", "патшалықтар3", "1падышалар"}},
	{Code: "2KI", Ordinal: 12, Titles: map[Language]string{LangRU: "4-я Царств", LangKZ: "Патшалықтар 4", LangKY: "2 Падышалар"}, Abbrevs: []string{"4цар", "4царств", "патшалықтар4", "2падышалар"}},
	{Code: "1CH", Ordinal: 13, Titles: map[Language]string{LangRU: "1-я Паралипоменон", LangKZ: "Шежірелер 1", LangKY: "1 Санжыра"}, Abbrevs: []string{"1пар", "1паралипоменон", "шежірелер1", "1санжыра"}},
	{Code: "2CH", Ordinal: 14, Titles: map[Language]string{LangRU: "2-я Паралипоменон", LangKZ: "Шежірелер 2", LangKY: "2 Санжыра"}, Abbrevs: []string{"2пар", "2паралипоменон", "шежірелер2", "2санжыра"}},
	{Code: "EZR", Ordinal: 15, Titles: map[Language]string{LangRU: "Ездра", LangKZ: "Езра", LangKY: "Ездра"}, Abbrevs: []string{"ездр", "ездра", "езра"}},
	{Code: "NEH", Ordinal: 16, Titles: map[Language]string{LangRU: "Неемия", LangKZ: "Нехемия", LangKY: "Неемия"}, Abbrevs: []string{"неем", "неемия", "нехемия"}},
	{Code: "EST", Ordinal: 17, Titles: map[Language]string{LangRU: "Есфирь", LangKZ: "Естер", LangKY: "Эстер"}, Abbrevs: []string{"есф", "есфирь", "естер", "эстер"}},
	{Code: "JOB", Ordinal: 18, Titles: map[Language]string{LangRU: "Иов", LangKZ: "Әйүп", LangKY: "Аюп"}, Abbrevs: []string{"иов", "әйүп", "аюп"}},
	{Code: "PSA", Ordinal: 19, Titles: map[Language]string{LangRU: "Псалтирь", LangKZ: "Жырлар", LangKY: "Забур"}, Abbrevs: []string{"пс", "псалтирь", "псалом", "жырлар", "забур"}},
	{Code: "PRO", Ordinal: 20, Titles: map[Language]string{LangRU: "Притчи", LangKZ: "Нақыл сөздер", LangKY: "Акыл сөздөр"}, Abbrevs: []string{"пр", "притч", "притчи", "нақылсөздер", "акылсөздөр"}},
	{Code: "ECC", Ordinal: 21, Titles: map[Language]string{LangRU: "Екклесиаст", LangKZ: "Уағыздаушы", LangKY: "Насаатчы"}, Abbrevs: []string{"еккл", "экклезиаст", "уағыздаушы", "насаатчы"}},
	{Code: "SNG", Ordinal: 22, Titles: map[Language]string{LangRU: "Песнь Песней", LangKZ: "Сүлейменнің әндері", LangKY: "Сулаймандын ыры"}, Abbrevs: []string{"песн", "песнь", "сүлейменніңәндері", "сулаймандыныры"}},
	{Code: "ISA", Ordinal: 23, Titles: map[Language]string{LangRU: "Исаия", LangKZ: "Ишая", LangKY: "Ишая"}, Abbrevs: []string{"ис", "исаия", "ишая"}},
	{Code: "JER", Ordinal: 24, Titles: map[Language]string{LangRU: "Иеремия", LangKZ: "Еремия", LangKY: "Жеремия"}, Abbrevs: []string{"иер", "иеремия", "еремия", "жеремия"}},
	{Code: "LAM", Ordinal: 25, Titles: map[Language]string{LangRU: "Плач Иеремии", LangKZ: "Еремияның жоқтауы", LangKY: "Жеремиянын муңу"}, Abbrevs: []string{"плач", "еремияныңжоқтауы", "жеремияныңмуну"}},
	{Code: "EZK", Ordinal: 26, Titles: map[Language]string{LangRU: "Иезекииль", LangKZ: "Езекиел", LangKY: "Эзекиел"}, Abbrevs: []string{"иез", "иезекииль", "езекиел", "эзекиел"}},
	{Code: "DAN", Ordinal: 27, Titles: map[Language]string{LangRU: "Даниил", LangKZ: "Даниял", LangKY: "Даниел"}, Abbrevs: []string{"дан", "даниил", "даниял", "даниел"}},
	{Code: "HOS", Ordinal: 28, Titles: map[Language]string{LangRU: "Осия", LangKZ: "Ошия", LangKY: "Ошия"}, Abbrevs: []string{"ос", "осия", "ошия"}},
	{Code: "JOL", Ordinal: 29, Titles: map[Language]string{LangRU: "Иоиль", LangKZ: "Жоел", LangKY: "Жоел"}, Abbrevs: []string{"иоиль", "жоел"}},
	{Code: "AMO", Ordinal: 30, Titles: map[Language]string{LangRU: "Амос", LangKZ: "Амос", LangKY: "Амос"}, Abbrevs: []string{"ам", "амос"}},
	{Code: "OBA", Ordinal: 31, Titles: map[Language]string{LangRU: "Авдий", LangKZ: "Абди", LangKY: "Обадыя"}, Abbrevs: []string{"авд", "авдий", "абди", "обадыя"}},
	{Code: "JON", Ordinal: 32, Titles: map[Language]string{LangRU: "Иона", LangKZ: "Жүніс", LangKY: "Жунус"}, Abbrevs: []string{"иона", "жүніс", "жунус"}},
	{Code: "MIC", Ordinal: 33, Titles: map[Language]string{LangRU: "Михей", LangKZ: "Миха", LangKY: "Мика"}, Abbrevs: []string{"мих", "михея", "миха", "мика"}},
	{Code: "NAM", Ordinal: 34, Titles: map[Language]string{LangRU: "Наум", LangKZ: "Нақұм", LangKY: "Наум"}, Abbrevs: []string{"наум", "нақұм"}},
	{Code: "HAB", Ordinal: 35, Titles: map[Language]string{LangRU: "Аввакум", LangKZ: "Аббақұқ", LangKY: "Хабакук"}, Abbrevs: []string{"авв", "аввакум", "аббақұқ", "хабакук"}},
	{Code: "ZEP", Ordinal: 36, Titles: map[Language]string{LangRU: "Софония", LangKZ: "Софония", LangKY: "Сепания"}, Abbrevs: []string{"соф", "софония", "сепания"}},
	{Code: "HAG", Ordinal: 37, Titles: map[Language]string{LangRU: "Аггей", LangKZ: "Хаққай", LangKY: "Хакай"}, Abbrevs: []string{"агг", "аггей", "хаққай", "хакай"}},
	{Code: "ZEC", Ordinal: 38, Titles: map[Language]string{LangRU: "Захария", LangKZ: "Зәкәрия", LangKY: "Закарыя"}, Abbrevs: []string{"зах", "захария", "зәкәрия", "закарыя"}},
	{Code: "MAL", Ordinal: 39, Titles: map[Language]string{LangRU: "Малахия", LangKZ: "Малахи", LangKY: "Малаки"}, Abbrevs: []string{"мал", "малахия", "малахи", "малаки"}},

	// New Testament
	{Code: "MAT", Ordinal: 40, Titles: map[Language]string{LangRU: "От Матфея", LangKZ: "Матай", LangKY: "Матай"}, Abbrevs: []string{"мф", "мт", "матфея", "матфей", "матай"}},
	{Code: "MRK", Ordinal: 41, Titles: map[Language]string{LangRU: "От Марка", LangKZ: "Марқа", LangKY: "Марк"}, Abbrevs: []string{"мк", "марка", "марк", "марқа"}},
	{Code: "LUK", Ordinal: 42, Titles: map[Language]string{LangRU: "От Луки", LangKZ: "Лұқа", LangKY: "Лука"}, Abbrevs: []string{"лк", "луки", "лука", "лұқа"}},
	{Code: "JHN", Ordinal: 43, Titles: map[Language]string{LangRU: "От Иоанна", LangKZ: "Жохан", LangKY: "Жакан"}, Abbrevs: []string{"ин", "иоанна", "иоанн", "жохан", "жакан"}},
	{Code: "ACT", Ordinal: 44, Titles: map[Language]string{LangRU: "Деяния", LangKZ: "Елшілер", LangKY: "Элчилердин иштери"}, Abbrevs: []string{"деян", "деяния", "елшілер", "элчилердиништери"}},
	{Code: "ROM", Ordinal: 45, Titles: map[Language]string{LangRU: "Римлянам", LangKZ: "Римдіктерге", LangKY: "Римге"}, Abbrevs: []string{"рим", "римлянам", "римдіктерге", "римге"}},
	{Code: "1CO", Ordinal: 46, Titles: map[Language]string{LangRU: "1-е Коринфянам", LangKZ: "Қорынттықтарға 1", LangKY: "1 Коринфке"}, Abbrevs: []string{"1кор", "1коринфянам", "қорынттықтарға1", "1коринфке"}},
	{Code: "2CO", Ordinal: 47, Titles: map[Language]string{LangRU: "2-е Коринфянам", LangKZ: "Қорынттықтарға 2", LangKY: "2 Коринфке"}, Abbrevs: []string{"2кор", "2коринфянам", "қорынттықтарға2", "2коринфке"}},
	{Code: "GAL", Ordinal: 48, Titles: map[Language]string{LangRU: "Галатам", LangKZ: "Ғалаттықтарға", LangKY: "Галатага"}, Abbrevs: []string{"гал", "галатам", "ғалаттықтарға", "галатага"}},
	{Code: "EPH", Ordinal: 49, Titles: map[Language]string{LangRU: "Ефесянам", LangKZ: "Ефестіктерге", LangKY: "Эфеске"}, Abbrevs: []string{"еф", "ефесянам", "ефестіктерге", "эфеске"}},
	{Code: "PHP", Ordinal: 50, Titles: map[Language]string{LangRU: "Филиппийцам", LangKZ: "Філіпіліктерге", LangKY: "Филипиге"}, Abbrevs: []string{"флп", "филиппийцам", "філіпіліктерге", "филипиге"}},
	{Code: "COL", Ordinal: 51, Titles: map[Language]string{LangRU: "Колоссянам", LangKZ: "Қолостықтарға", LangKY: "Колоссага"}, Abbrevs: []string{"кол", "колоссянам", "қолостықтарға", "колоссага"}},
	{Code: "1TH", Ordinal: 52, Titles: map[Language]string{LangRU: "1-е Фессалоникийцам", LangKZ: "Салониқалықтарға 1", LangKY: "1 Салоникага"}, Abbrevs: []string{"1фес", "1фессалоникийцам", "салониқалықтарға1", "1салоникага"}},
	{Code: "2TH", Ordinal: 53, Titles: map[Language]string{LangRU: "2-е Фессалоникийцам", LangKZ: "Салониқалықтарға 2", LangKY: "2 Салоникага"}, Abbrevs: []string{"2фес", "2фессалоникийцам", "салониқалықтарға2", "2салоникага"}},
	{Code: "1TI", Ordinal: 54, Titles: map[Language]string{LangRU: "1-е Тимофею", LangKZ: "Тімотеге 1", LangKY: "1 Тимотейге"}, Abbrevs: []string{"1тим", "1тимофею", "тімотеге1", "1тимотейге"}},
	{Code: "2TI", Ordinal: 55, Titles: map[Language]string{LangRU: "2-е Тимофею", LangKZ: "Тімотеге 2", LangKY: "2 Тимотейге"}, Abbrevs: []string{"2тим", "2тимофею", "тімотеге2", "2тимотейге"}},
	{Code: "TIT", Ordinal: 56, Titles: map[Language]string{LangRU: "Титу", LangKZ: "Титке", LangKY: "Титке"}, Abbrevs: []string{"тит", "титу", "титке"}},
	{Code: "PHM", Ordinal: 57, Titles: map[Language]string{LangRU: "Филимону", LangKZ: "Філімонға", LangKY: "Филимонго"}, Abbrevs: []string{"флм", "филимону", "філімонға", "филимонго"}},
	{Code: "HEB", Ordinal: 58, Titles: map[Language]string{LangRU: "Евреям", LangKZ: "Еврейлерге", LangKY: "Жөөттөргө"}, Abbrevs: []string{"евр", "евреям", "еврейлерге", "жөөттөргө"}},
	{Code: "JAS", Ordinal: 59, Titles: map[Language]string{LangRU: "Иакова", LangKZ: "Жақып", LangKY: "Жакып"}, Abbrevs: []string{"иак", "иакова", "жақып", "жакып"}},
	{Code: "1PE", Ordinal: 60, Titles: map[Language]string{LangRU: "1-е Петра", LangKZ: "Петірдің 1", LangKY: "1 Петир"}, Abbrevs: []string{"1пет", "1петра", "петірдің1", "1петир"}},
	{Code: "2PE", Ordinal: 61, Titles: map[Language]string{LangRU: "2-е Петра", LangKZ: "Петірдің 2", LangKY: "2 Петир"}, Abbrevs: []string{"2пет", "2петра", "петірдің2", "2петир"}},
	{Code: "1JN", Ordinal: 62, Titles: map[Language]string{LangRU: "1-е Иоанна", LangKZ: "Жоханның 1", LangKY: "1 Жакан"}, Abbrevs: []string{"1ин", "1иоанна", "жоханның1", "1жакан"}},
	{Code: "2JN", Ordinal: 63, Titles: map[Language]string{LangRU: "2-е Иоанна", LangKZ: "Жоханның 2", LangKY: "2 Жакан"}, Abbrevs: []string{"2ин", "2иоанна", "жоханның2", "2жакан"}},
	{Code: "3JN", Ordinal: 64, Titles: map[Language]string{LangRU: "3-е Иоанна", LangKZ: "Жоханның 3", LangKY: "3 Жакан"}, Abbrevs: []string{"3ин", "3иоанна", "жоханның3", "3жакан"}},
	{Code: "JUD", Ordinal: 65, Titles: map[Language]string{LangRU: "Иуды", LangKZ: "Яһуда", LangKY: "Жуда"}, Abbrevs: []string{"иуд", "иуды", "яһуда", "жуда"}},
	{Code: "REV", Ordinal: 66, Titles: map[Language]string{LangRU: "Откровение", LangKZ: "Аян", LangKY: "Аян"}, Abbrevs: []string{"откр", "откровение", "аян"}},
}
