// Copyright (c) 2018, Cogent Core. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package key defines physical key codes and modifier keys.
package key

import "fmt"

// Codes is the physical key code of a key, independent of the
// keyboard layout. The values follow the USB HID usage table.
type Codes int32

// Physical key codes.
const (
	CodeUnknown Codes = 0

	CodeA Codes = 4
	CodeB Codes = 5
	CodeC Codes = 6
	CodeD Codes = 7
	CodeE Codes = 8
	CodeF Codes = 9
	CodeG Codes = 10
	CodeH Codes = 11
	CodeI Codes = 12
	CodeJ Codes = 13
	CodeK Codes = 14
	CodeL Codes = 15
	CodeM Codes = 16
	CodeN Codes = 17
	CodeO Codes = 18
	CodeP Codes = 19
	CodeQ Codes = 20
	CodeR Codes = 21
	CodeS Codes = 22
	CodeT Codes = 23
	CodeU Codes = 24
	CodeV Codes = 25
	CodeW Codes = 26
	CodeX Codes = 27
	CodeY Codes = 28
	CodeZ Codes = 29

	Code1 Codes = 30
	Code2 Codes = 31
	Code3 Codes = 32
	Code4 Codes = 33
	Code5 Codes = 34
	Code6 Codes = 35
	Code7 Codes = 36
	Code8 Codes = 37
	Code9 Codes = 38
	Code0 Codes = 39

	CodeReturnEnter        Codes = 40
	CodeEscape             Codes = 41
	CodeBackspace          Codes = 42
	CodeTab                Codes = 43
	CodeSpacebar           Codes = 44
	CodeHyphenMinus        Codes = 45
	CodeEqualSign          Codes = 46
	CodeLeftSquareBracket  Codes = 47
	CodeRightSquareBracket Codes = 48
	CodeBackslash          Codes = 49
	CodeSemicolon          Codes = 51
	CodeApostrophe         Codes = 52
	CodeGraveAccent        Codes = 53
	CodeComma              Codes = 54
	CodeFullStop           Codes = 55
	CodeSlash              Codes = 56
	CodeCapsLock           Codes = 57

	CodeF1  Codes = 58
	CodeF2  Codes = 59
	CodeF3  Codes = 60
	CodeF4  Codes = 61
	CodeF5  Codes = 62
	CodeF6  Codes = 63
	CodeF7  Codes = 64
	CodeF8  Codes = 65
	CodeF9  Codes = 66
	CodeF10 Codes = 67
	CodeF11 Codes = 68
	CodeF12 Codes = 69

	CodePause         Codes = 72
	CodeInsert        Codes = 73
	CodeHome          Codes = 74
	CodePageUp        Codes = 75
	CodeDelete        Codes = 76
	CodeEnd           Codes = 77
	CodePageDown      Codes = 78
	CodeRightArrow    Codes = 79
	CodeLeftArrow     Codes = 80
	CodeDownArrow     Codes = 81
	CodeUpArrow       Codes = 82
	CodeKeypadNumLock Codes = 83

	CodeKeypadSlash    Codes = 84
	CodeKeypadAsterisk Codes = 85
	CodeKeypadHyphen   Codes = 86
	CodeKeypadPlusSign Codes = 87
	CodeKeypadEnter    Codes = 88
	CodeKeypad1        Codes = 89
	CodeKeypad2        Codes = 90
	CodeKeypad3        Codes = 91
	CodeKeypad4        Codes = 92
	CodeKeypad5        Codes = 93
	CodeKeypad6        Codes = 94
	CodeKeypad7        Codes = 95
	CodeKeypad8        Codes = 96
	CodeKeypad9        Codes = 97
	CodeKeypad0        Codes = 98
	CodeKeypadFullStop Codes = 99

	CodeKeypadEqualSign Codes = 103

	CodeLeftControl  Codes = 224
	CodeLeftShift    Codes = 225
	CodeLeftAlt      Codes = 226
	CodeLeftMeta     Codes = 227
	CodeRightControl Codes = 228
	CodeRightShift   Codes = 229
	CodeRightAlt     Codes = 230
	CodeRightMeta    Codes = 231
)

var codeNames = map[Codes]string{
	CodeReturnEnter: "ReturnEnter", CodeEscape: "Escape", CodeBackspace: "Backspace",
	CodeTab: "Tab", CodeSpacebar: "Spacebar", CodeHyphenMinus: "HyphenMinus",
	CodeEqualSign: "EqualSign", CodeLeftSquareBracket: "LeftSquareBracket",
	CodeRightSquareBracket: "RightSquareBracket", CodeBackslash: "Backslash",
	CodeSemicolon: "Semicolon", CodeApostrophe: "Apostrophe", CodeGraveAccent: "GraveAccent",
	CodeComma: "Comma", CodeFullStop: "FullStop", CodeSlash: "Slash", CodeCapsLock: "CapsLock",
	CodePause: "Pause", CodeInsert: "Insert", CodeHome: "Home", CodePageUp: "PageUp",
	CodeDelete: "Delete", CodeEnd: "End", CodePageDown: "PageDown",
	CodeRightArrow: "RightArrow", CodeLeftArrow: "LeftArrow", CodeDownArrow: "DownArrow",
	CodeUpArrow: "UpArrow", CodeKeypadNumLock: "KeypadNumLock",
	CodeKeypadSlash: "KeypadSlash", CodeKeypadAsterisk: "KeypadAsterisk",
	CodeKeypadHyphen: "KeypadHyphen", CodeKeypadPlusSign: "KeypadPlusSign",
	CodeKeypadEnter: "KeypadEnter", CodeKeypadFullStop: "KeypadFullStop",
	CodeKeypadEqualSign: "KeypadEqualSign",
	CodeLeftControl: "LeftControl", CodeLeftShift: "LeftShift", CodeLeftAlt: "LeftAlt",
	CodeLeftMeta: "LeftMeta", CodeRightControl: "RightControl", CodeRightShift: "RightShift",
	CodeRightAlt: "RightAlt", CodeRightMeta: "RightMeta",
}

func (c Codes) String() string {
	switch {
	case c >= CodeA && c <= CodeZ:
		return string(rune('A' + c - CodeA))
	case c >= Code1 && c <= Code9:
		return string(rune('1' + c - Code1))
	case c == Code0:
		return "0"
	case c >= CodeF1 && c <= CodeF12:
		return fmt.Sprintf("F%d", c-CodeF1+1)
	case c >= CodeKeypad1 && c <= CodeKeypad9:
		return fmt.Sprintf("Keypad%d", c-CodeKeypad1+1)
	case c == CodeKeypad0:
		return "Keypad0"
	case c == CodeUnknown:
		return "Unknown"
	}
	if nm, ok := codeNames[c]; ok {
		return nm
	}
	return fmt.Sprintf("Codes(%d)", int32(c))
}

// IsModifier returns whether the code is one of the modifier keys.
func (c Codes) IsModifier() bool {
	return c >= CodeLeftControl && c <= CodeRightMeta
}
