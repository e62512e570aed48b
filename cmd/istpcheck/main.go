/*
Copyright © 2020 the ISTPCheck authors.
This file is part of ISTPCheck.

ISTPCheck is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

ISTPCheck is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with ISTPCheck.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command istpcheck is a command-line interface for checking and
// repairing ISTP metadata in self-describing scientific data files.
package main

import (
	"fmt"
	"os"

	"github.com/spacedata/istp/istputil"
)

func main() {
	if err := istputil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
