package constants

type ShinySource struct {
	Name  string
	Title string
	URL   string
}

const (
	SourcePogoAPI   = "pogoapi.net"
	SourceGamePress = "gamepress.gg"
)

func GetShinySources() []ShinySource {
	var shinySources []ShinySource
	shinySources = append(shinySources, ShinySource{Name: SourcePogoAPI, Title: "The PogoAPI machine readable data", URL: "https://pogoapi.net"})
	shinySources = append(shinySources, ShinySource{Name: SourceGamePress, Title: "GamePress shinies list", URL: "https://pokemongo.gamepress.gg/pokemon-go-shinies-list"})

	return shinySources
}

func IsShinySource(name string) bool {
	for _, source := range GetShinySources() {
		if source.Name == name {
			return true
		}
	}

	return false
}

func GetShinySourceNames() []string {
	var names []string
	for _, source := range GetShinySources() {
		names = append(names, source.Name)
	}

	return names
}
