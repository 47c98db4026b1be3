package animals

import (
	"strings"
	"time"
)

// State es el estado del animal dentro del refugio.
// @Enum available, reserved, adopted
type State string

const (
	StateAvailable State = "available"
	StateReserved  State = "reserved"
	StateAdopted   State = "adopted"
)

// Species define las especies que recibe el refugio.
// @Enum dog, cat, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesOther Species = "other"
)

// Sex define el sexo del animal.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Size es el tamaño aproximado, útil para filtrar en el catálogo.
type Size string

const (
	SizeSmall  Size = "small"
	SizeMedium Size = "medium"
	SizeLarge  Size = "large"
)

// Animal representa un animal del refugio publicado para adopción.
type Animal struct {
	ID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex
	Size    Size

	BirthDate *time.Time

	Description string
	PhotoURL    string

	State State

	CreatedAt time.Time
	UpdatedAt time.Time
}

func ParseState(s string) (State, bool) {
	switch State(strings.ToLower(strings.TrimSpace(s))) {
	case StateAvailable:
		return StateAvailable, true
	case StateReserved:
		return StateReserved, true
	case StateAdopted:
		return StateAdopted, true
	default:
		return "", false
	}
}

func ParseSpecies(s string) (Species, bool) {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesDog:
		return SpeciesDog, true
	case SpeciesCat:
		return SpeciesCat, true
	case SpeciesOther:
		return SpeciesOther, true
	default:
		return "", false
	}
}

// normalizeSex: vacío o desconocido => unknown.
func normalizeSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexUnknown
	}
}

func normalizeSize(s string) (Size, bool) {
	switch Size(strings.ToLower(strings.TrimSpace(s))) {
	case "":
		return "", true
	case SizeSmall:
		return SizeSmall, true
	case SizeMedium:
		return SizeMedium, true
	case SizeLarge:
		return SizeLarge, true
	default:
		return "", false
	}
}
