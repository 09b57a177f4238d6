package keyboard

// PressKey creates an InputState with the specified keys pressed.
// No modifiers are set.
func PressKey(keys ...uint8) InputState {
	return PressKeyWithMod(0, keys...)
}

// PressKeyWithMod creates an InputState with modifiers and keys pressed.
//
// Example:
//
//	state := PressKeyWithMod(ModLeftCtrl, Key1) // Ctrl+1
func PressKeyWithMod(modifiers uint8, keys ...uint8) InputState {
	var state InputState
	state.Modifiers = modifiers
	for _, key := range keys {
		state.Press(key)
	}
	return state
}

// Release creates an empty InputState with all keys released.
func Release() InputState {
	return InputState{}
}
