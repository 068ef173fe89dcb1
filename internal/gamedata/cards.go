package gamedata

// BaseCardIDs are the starter cards every player can field without owning
// them. The collection API does not return them, so player collections are
// padded with these at level 1.
var BaseCardIDs = []int{
	135, 136, 137, 138, 139, 140, 141, 145, 146, 147, 148, 149, 150, 151, 152,
	156, 157, 158, 159, 160, 161, 162, 163, 167, 168, 169, 170, 171, 172, 173,
	174, 178, 179, 180, 181, 182, 183, 184, 185, 189, 190, 191, 192, 193, 194,
	195, 196, 224, 353, 354, 355, 356, 357, 358, 359, 360, 361, 367, 368, 369,
	370, 371, 372, 373, 374, 375, 381, 382, 383, 384, 385, 386, 387, 388, 389,
	395, 396, 397, 398, 399, 400, 401, 402, 403, 409, 410, 411, 412, 413, 414,
	415, 416, 417, 423, 424, 425, 426, 427, 428, 429, 437, 438, 439, 440, 441,
}
