// Package render turns a task list into the fixed-width report printed by
// the print, edit and delete commands.
//
// The report is a bordered table with six columns:
//
//	+----+------------+-------+---+---+--------------------------------------------+
//	| N  |    Date    | Time  | P | D |                   Task                     |
//	+----+------------+-------+---+---+--------------------------------------------+
//	| 1  | 2023-05-25 | 19:30 | L | F |Watch Season 9 of Game of Thrones           |
//	+----+------------+-------+---+---+--------------------------------------------+
//
// P is the priority mark and D the due mark. With ANSIMarks both are
// colored background blocks; PlainMarks prints letters instead. Column
// widths are fixed and other tools parse them, so they never depend on the
// content.
//
// Descriptions are split by Reflow into 44 character chunks, one per
// content row. Only the first content row of a task carries its number,
// date, time and marks.
//
// Urgency is computed by Classify from the date of the due time and the
// caller's "today". The time of day is ignored.
package render
