package lobby

import (
	"main/internal/data"
)

type User struct {
	ID           string
	Nickname     string
	Tag          string
	AvatarURL    string
	Exp          int
	MaxExp       int
	Medals       int
	Trophies     int
	Level        int
	Coins        int
	Status       string
	XPPercentage string
	Language     string
	NameColor    string
	BannerColor  string
	Inventory    []string
}

type Translations struct {
	// General / Nav
	LobbyName   string
	Level       string
	XP          string
	Shop        string
	FriendsNav  string
	Customize   string
	Leaderboard string
	Back        string
	Settings    string
	Close       string
	Cancel      string
	Save        string
	LangCurrent string

	// Auth & Status
	Login         string
	Register      string
	Logout        string
	Nickname      string
	Password      string
	Tag           string
	Online        string
	Away          string
	Offline       string
	CreateProfile string
	LoginTitle    string

	// Friends Page
	AddFriendBtn    string
	NoFriendsTitle  string
	NoFriendsDesc   string
	ChatAction      string
	RemoveAction    string
	AddFriendHeader string
	SendRequest     string
	ChatTitle       string

	// Customize Page
	CustomizeTitle string
	NameColorTitle string
	BannerTitle    string
	PreviewLabel   string
	ColorWhite     string
	ColorGold      string
	ColorRainbow   string
	BannerDefault  string
	BannerGold     string
	BannerCyber    string

	// Shop Page
	ExclusiveStyles string
	Resources       string
	ItemRainbowName string
	ItemRainbowDesc string
	ItemGoldName    string
	ItemGoldDesc    string
	ItemCyberBanner string
	ItemCyberDesc   string
	ItemGoldBanner  string
	ItemGoldBannerD string
	ItemSack        string
	ItemChest       string

	// Leaderboard Page
	LeaderboardTitle string
	Rank             string
	Trophies         string

	// Battle
	BattleTitle  string
	BattleSub    string
	DeployZone   string
	StartBattle  string
	AutoResolve  string
	ResetBattle  string
	ArmMachine   string
	Attacker     string
	Defender     string
	Victory      string
	Defeat       string
	Draw         string
	MatchHistory string
}

type PageData struct {
	User         User
	Friends      []data.Friend
	Text         Translations
	Lang         string
	MedalDetails []data.Medal
	Matches      []data.Match
	Leaderboard  []data.LeaderboardEntry
	ShowRegister bool
	ActivePage   string
}

var texts = map[string]Translations{
	"en": {
		LobbyName:   "ZARUBA",
		Level:       "LEVEL",
		XP:          "XP",
		Shop:        "Shop",
		FriendsNav:  "Friends",
		Customize:   "Customization",
		Leaderboard: "Leaderboard",
		Back:        "Back",
		Settings:    "Settings",
		Close:       "Close",
		Cancel:      "Cancel",
		Save:        "Save",
		LangCurrent: "ENG",

		Login:         "Login",
		Register:      "Register",
		Logout:        "Log Out",
		Nickname:      "Nickname",
		Password:      "Password",
		Tag:           "Tag (e.g. 0001)",
		Online:        "Online",
		Away:          "Away",
		Offline:       "Offline",
		CreateProfile: "Create your profile",
		LoginTitle:    "Login",

		AddFriendBtn:    "+ Add Friend",
		NoFriendsTitle:  "No friends yet",
		NoFriendsDesc:   "Add friends using their Nickname and Tag #.",
		ChatAction:      "Chat",
		RemoveAction:    "Remove",
		AddFriendHeader: "Add Friend",
		SendRequest:     "Send Request",
		ChatTitle:       "Chat",

		CustomizeTitle: "Customize",
		NameColorTitle: "Name Color",
		BannerTitle:    "Lobby Banner",
		PreviewLabel:   "PREVIEW",
		ColorWhite:     "Standard White",
		ColorGold:      "Gold",
		ColorRainbow:   "Rainbow",
		BannerDefault:  "Default Dark",
		BannerGold:     "Golden Glow",
		BannerCyber:    "Cyber Punk",

		ExclusiveStyles: "Exclusive Styles",
		Resources:       "Resources",
		ItemRainbowName: "Rainbow Name",
		ItemRainbowDesc: "Make your nickname shimmer with all colors.",
		ItemGoldName:    "Gold Name",
		ItemGoldDesc:    "A prestigious golden glow for your name.",
		ItemCyberBanner: "Cyber Banner",
		ItemCyberDesc:   "Futuristic banner for your lobby background.",
		ItemGoldBanner:  "Gold Banner",
		ItemGoldBannerD: "Show off your wealth with this banner.",
		ItemSack:        "Sack of Coins",
		ItemChest:       "Chest of Coins",

		LeaderboardTitle: "Leaderboard",
		Rank:             "Rank",
		Trophies:         "Trophies",

		BattleTitle:  "Zaruba Battlegrounds",
		BattleSub:    "Pack-based warfare",
		DeployZone:   "DEPLOYMENT ZONE",
		StartBattle:  "START BATTLE",
		AutoResolve:  "AUTO-RESOLVE",
		ResetBattle:  "RESET",
		ArmMachine:   "Arm War Machine",
		Attacker:     "Attacker",
		Defender:     "Defender",
		Victory:      "VICTORY",
		Defeat:       "DEFEAT",
		Draw:         "DRAW",
		MatchHistory: "Recent Battles",
	},
	"ua": {
		LobbyName:   "ЗАРУБА",
		Level:       "Рівень",
		XP:          "Досвід",
		Shop:        "Крамниця",
		FriendsNav:  "Друзі",
		Customize:   "Кастомізація",
		Leaderboard: "Топ гравців",
		Back:        "Назад",
		Settings:    "Налаштування",
		Close:       "Закрити",
		Cancel:      "Скасувати",
		Save:        "Зберегти",
		LangCurrent: "UKR",

		Login:         "Увійти",
		Register:      "Реєстрація",
		Logout:        "Вийти",
		Nickname:      "Нікнейм",
		Password:      "Пароль",
		Tag:           "Теґ (напр. 0001)",
		Online:        "Онлайн",
		Away:          "Відійшов",
		Offline:       "Офлайн",
		CreateProfile: "Створити профіль",
		LoginTitle:    "Вхід",

		AddFriendBtn:    "+ Додати друга",
		NoFriendsTitle:  "Поки що у тебе немає друзів",
		NoFriendsDesc:   "Додавай друзів за нікнеймом та теґом.",
		ChatAction:      "Чат",
		RemoveAction:    "Видалити",
		AddFriendHeader: "Додати друга",
		SendRequest:     "Надіслати",
		ChatTitle:       "Чат",

		CustomizeTitle: "Кастомізація",
		NameColorTitle: "Колір імені",
		BannerTitle:    "Банер лобі",
		PreviewLabel:   "ПЕРЕГЛЯД",
		ColorWhite:     "Звичайний білий",
		ColorGold:      "Сяючий золотавий",
		ColorRainbow:   "Райдужний",
		BannerDefault:  "Темний стандарт",
		BannerGold:     "Золоте сяйво",
		BannerCyber:    "Кіберпанк",

		ExclusiveStyles: "Ексклюзив",
		Resources:       "Ресурси",
		ItemRainbowName: "Райдужний колір",
		ItemRainbowDesc: "Твій нікнейм переливатиметься всіма кольорами.",
		ItemGoldName:    "Золотий колір",
		ItemGoldDesc:    "Престижне золоте світіння.",
		ItemCyberBanner: "Кібербанер",
		ItemCyberDesc:   "Футуристичний фон для твого лобі.",
		ItemGoldBanner:  "Золотий банер",
		ItemGoldBannerD: "Покажи своє багатство.",
		ItemSack:        "Мішок Монет",
		ItemChest:       "Скриня Монет",

		LeaderboardTitle: "Таблиця лідерів",
		Rank:             "Ранг",
		Trophies:         "Кубки",

		BattleTitle:  "Зарубівське Поле Бою",
		BattleSub:    "Війна загонами",
		DeployZone:   "ЗОНА ВИСАДКИ",
		StartBattle:  "В БІЙ",
		AutoResolve:  "АВТОБІЙ",
		ResetBattle:  "СКИНУТИ",
		ArmMachine:   "Зарядити машину",
		Attacker:     "Нападник",
		Defender:     "Захисник",
		Victory:      "ПЕРЕМОГА",
		Defeat:       "ПОРАЗКА",
		Draw:         "НІЧИЯ",
		MatchHistory: "Останні битви",
	},
	"ru": {
		LobbyName:   "ЗАРУБА",
		Level:       "Уровень",
		XP:          "Опыт",
		Shop:        "Магазин",
		FriendsNav:  "Друзья",
		Customize:   "Редактор",
		Leaderboard: "Лидерборд",
		Back:        "Назад",
		Settings:    "Настройки",
		Close:       "Закрыть",
		Cancel:      "Отмена",
		Save:        "Сохранить",
		LangCurrent: "RUS",

		Login:         "Войти",
		Register:      "Регистрация",
		Logout:        "Выйти",
		Nickname:      "Никнейм",
		Password:      "Пароль",
		Tag:           "Тег (напр. 0001)",
		Online:        "Онлайн",
		Away:          "Отошел",
		Offline:       "Оффлайн",
		CreateProfile: "Создать профиль",
		LoginTitle:    "Вход",

		AddFriendBtn:    "+ Добавить друга",
		NoFriendsTitle:  "Пока нет друзей",
		NoFriendsDesc:   "Добавляй друзей по никнейму и тегу.",
		ChatAction:      "Чат",
		RemoveAction:    "Удалить",
		AddFriendHeader: "Добавить друга",
		SendRequest:     "Отправить",
		ChatTitle:       "Чат",

		CustomizeTitle: "Редактор",
		NameColorTitle: "Цвет имени",
		BannerTitle:    "Баннер лобби",
		PreviewLabel:   "ПРЕДПРОСМОТР",
		ColorWhite:     "Обычный белый",
		ColorGold:      "Золотистый блеск",
		ColorRainbow:   "Радужный",
		BannerDefault:  "Тёмный стандарт",
		BannerGold:     "Золотое сияние",
		BannerCyber:    "Киберпанк",

		ExclusiveStyles: "Эксклюзив",
		Resources:       "Ресурсы",
		ItemRainbowName: "Радужный цвет",
		ItemRainbowDesc: "Твой никнейм будет переливаться всеми цветами.",
		ItemGoldName:    "Золотой цвет",
		ItemGoldDesc:    "Престижное золотое свечение.",
		ItemCyberBanner: "Кибербаннер",
		ItemCyberDesc:   "Футуристичный фон для твоего лобби.",
		ItemGoldBanner:  "Богатый баннер",
		ItemGoldBannerD: "Покажи своё богатство.",
		ItemSack:        "Мешок Монет",
		ItemChest:       "Сундук Монет",

		LeaderboardTitle: "Таблица Лидеров",
		Rank:             "Ранг",
		Trophies:         "Кубки",

		BattleTitle:  "Зарубинское Поле Боя",
		BattleSub:    "Война отрядами",
		DeployZone:   "ЗОНА ВЫСАДКИ",
		StartBattle:  "В БОЙ",
		AutoResolve:  "АВТОБОЙ",
		ResetBattle:  "СБРОСИТЬ",
		ArmMachine:   "Зарядить машину",
		Attacker:     "Нападающий",
		Defender:     "Защитник",
		Victory:      "ПОБЕДА",
		Defeat:       "ПОРАЖЕНИЕ",
		Draw:         "НИЧЬЯ",
		MatchHistory: "Последние битвы",
	},
}
