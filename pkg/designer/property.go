package designer

import (
	"fmt"
	"math"
	"strconv"
)

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// toFloat converts a property panel value. NaN and infinities are rejected.
func toFloat(value any) (float64, error) {
	f, err := parseFloat(value)
	if err != nil {
		return 0, err
	}
	if !finite(f) {
		return 0, fmt.Errorf("%w: %v is not a finite number", ErrInvalidValue, value)
	}
	return f, nil
}

func parseFloat(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("%w: %v is not a number", ErrInvalidValue, value)
	}
}

func toString(value any) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", fmt.Errorf("%w: %v is not a string", ErrInvalidValue, value)
	}
}

// setProperty applies a property panel edit. Geometry keys live on the element, the
// rest on its properties. Setting fieldType on a field rewrites its placeholder text.
func setProperty(e *Element, name string, value any) error {
	switch name {
	case "x", "y", "width", "height", "rotation", "fontSize", "borderWidth", "borderRadius", "zIndex":
		f, err := toFloat(value)
		if err != nil {
			return err
		}
		return setNumber(e, name, f)
	case "preserveAspectRatio":
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %v is not a boolean", ErrInvalidValue, value)
		}
		e.Properties.PreserveAspectRatio = b
		return nil
	}

	s, err := toString(value)
	if err != nil {
		return err
	}

	p := &e.Properties
	switch name {
	case "text":
		p.Text = s
	case "fontFamily":
		p.FontFamily = s
	case "fontWeight":
		p.FontWeight = s
	case "color":
		p.Color = s
	case "alignment":
		switch s {
		case "left", "center", "right":
			p.Alignment = s
		default:
			return fmt.Errorf("%w: alignment %q", ErrInvalidValue, s)
		}
	case "fieldType":
		if s == "" {
			return fmt.Errorf("%w: field type is required", ErrInvalidValue)
		}
		p.FieldType = s
		if e.Type == ElementField {
			p.Text = FieldPlaceholder(s)
		}
	case "imageUrl":
		p.ImageURL = s
	case "shape":
		p.Shape = s
	case "backgroundColor":
		p.BackgroundColor = s
	case "borderColor":
		p.BorderColor = s
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProperty, name)
	}
	return nil
}

func setNumber(e *Element, name string, f float64) error {
	switch name {
	case "x":
		e.X = f
	case "y":
		e.Y = f
	case "width":
		e.Width = max(f, MinSize)
	case "height":
		e.Height = max(f, MinSize)
	case "rotation":
		e.Rotation = f
	case "zIndex":
		e.ZIndex = int(f)
	case "fontSize":
		if f <= 0 {
			return fmt.Errorf("%w: font size must be positive", ErrInvalidValue)
		}
		e.Properties.FontSize = f
	case "borderWidth":
		if f < 0 {
			return fmt.Errorf("%w: border width must not be negative", ErrInvalidValue)
		}
		e.Properties.BorderWidth = f
	case "borderRadius":
		if f < 0 {
			return fmt.Errorf("%w: border radius must not be negative", ErrInvalidValue)
		}
		e.Properties.BorderRadius = f
	}
	return nil
}
