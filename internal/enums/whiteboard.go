package enums

const DEFAULT_WHITEBOARD_BACKGROUND = "#ffffff"

const (
	ELEMENT_RECTANGLE = "rectangle"
	ELEMENT_CIRCLE    = "circle"
	ELEMENT_LINE      = "line"
	ELEMENT_TEXT      = "text"
	ELEMENT_IMAGE     = "image"
)

func IsValidElementType(elementType string) bool {
	switch elementType {
	case ELEMENT_RECTANGLE, ELEMENT_CIRCLE, ELEMENT_LINE, ELEMENT_TEXT, ELEMENT_IMAGE:
		return true
	}
	return false
}
